// Package validation evalúa las restricciones declaradas junto a la entidad.
// El validador es puro: no muta la entidad y no hace I/O.
package validation

import "github.com/cn2-g7/usuarios-api/internal/domain/entity"

// Violacion restricción incumplida sobre un campo.
type Violacion struct {
	Campo   string
	Mensaje string
}

// Validar evalúa todas las restricciones de Usuario y devuelve las violadas
// (vacío si la entidad es válida), en el orden en que están declaradas.
func Validar(u *entity.Usuario) []Violacion {
	var violaciones []Violacion
	for _, r := range entity.RestriccionesUsuario {
		if !cumple(u, r) {
			violaciones = append(violaciones, Violacion{Campo: r.Campo, Mensaje: r.Mensaje})
		}
	}
	return violaciones
}

// Mensajes proyecta solo los mensajes de una lista de violaciones.
func Mensajes(violaciones []Violacion) []string {
	mensajes := make([]string, 0, len(violaciones))
	for _, v := range violaciones {
		mensajes = append(mensajes, v.Mensaje)
	}
	return mensajes
}

func cumple(u *entity.Usuario, r entity.Restriccion) bool {
	valor := u.Campo(r.Campo)
	switch r.Tipo {
	case entity.NoVacio:
		s, ok := valor.(string)
		return ok && s != ""
	case entity.Patron:
		s, ok := valor.(string)
		return ok && r.Patron.MatchString(s)
	case entity.LongitudMinima:
		s, ok := valor.(string)
		return ok && len(s) >= r.Minimo
	case entity.NoNulo:
		return valor != nil
	default:
		return true
	}
}
