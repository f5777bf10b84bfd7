package entity

import (
	"regexp"
	"time"
)

// Rol agrupa autoridades referenciadas por un Usuario. Se crea fuera de este
// sistema; aquí solo se lee.
type Rol struct {
	ID          int64
	Nombre      string
	Descripcion string
}

// Usuario representa una cuenta capaz de iniciar sesión.
type Usuario struct {
	ID            int64  // asignado por la base de datos al crear, inmutable después
	Username      string // único
	Email         string // único
	PasswordHash  string // digest bcrypt; nunca texto plano en reposo
	Nombre        string
	Apellido      string
	Rol           *Rol
	Activo        bool
	FechaCreacion time.Time
}

// Tipos de restricción declarativa soportados.
type TipoRestriccion int

const (
	NoVacio TipoRestriccion = iota
	Patron
	LongitudMinima
	NoNulo
)

// Restriccion declara una regla sobre un campo de Usuario. Las restricciones
// viven junto a la entidad; el validador de dominio es el único consumidor.
type Restriccion struct {
	Campo   string
	Tipo    TipoRestriccion
	Patron  *regexp.Regexp // solo para Tipo == Patron
	Minimo  int            // solo para Tipo == LongitudMinima
	Mensaje string
}

// PatronEmail formato de email aceptado en todo el sistema.
var PatronEmail = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// RestriccionesUsuario reglas de campo de Usuario, en el orden en que se reportan.
var RestriccionesUsuario = []Restriccion{
	{Campo: "username", Tipo: NoVacio, Mensaje: "El nombre de usuario es requerido"},
	{Campo: "email", Tipo: Patron, Patron: PatronEmail, Mensaje: "Email inválido"},
	{Campo: "passwordHash", Tipo: NoVacio, Mensaje: "La contraseña es requerida"},
	{Campo: "nombre", Tipo: NoVacio, Mensaje: "El nombre es requerido"},
	{Campo: "apellido", Tipo: NoVacio, Mensaje: "El apellido es requerido"},
	{Campo: "rol", Tipo: NoNulo, Mensaje: "El rol es requerido"},
}

// Campo devuelve el valor del campo referido por una restricción.
// Devuelve nil para referencias no asignadas (consumido por NoNulo).
func (u *Usuario) Campo(nombre string) any {
	switch nombre {
	case "username":
		return u.Username
	case "email":
		return u.Email
	case "passwordHash":
		return u.PasswordHash
	case "nombre":
		return u.Nombre
	case "apellido":
		return u.Apellido
	case "rol":
		if u.Rol == nil {
			return nil
		}
		return u.Rol
	case "activo":
		return u.Activo
	default:
		return nil
	}
}
