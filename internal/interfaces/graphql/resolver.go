package graphql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/cn2-g7/usuarios-api/internal/application/dto"
	"github.com/cn2-g7/usuarios-api/internal/application/usecase"
	"github.com/cn2-g7/usuarios-api/internal/domain"
	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
)

// Nombres de campo de los inputs GraphQL.
const (
	campoID       = "id"
	campoUsername = "username"
	campoEmail    = "email"
	campoPassword = "password"
	campoNombre   = "nombre"
	campoApellido = "apellido"
	campoRolInput = "rol"
	campoActivo   = "activo"
)

// Resolver implementa los cinco resolvers del esquema delegando el protocolo
// de escritura al caso de uso. Aquí solo vive lo propio de la superficie:
// coerción de argumentos, resolución de rol y pre-validación con mensajes
// en español.
type Resolver struct {
	uc *usecase.UsuarioUseCase
}

// NewResolver construye el resolver con el caso de uso.
func NewResolver(uc *usecase.UsuarioUseCase) *Resolver {
	return &Resolver{uc: uc}
}

// Usuarios resuelve Query.usuarios.
func (r *Resolver) Usuarios(p graphql.ResolveParams) (interface{}, error) {
	return r.uc.ObtenerTodos()
}

// Usuario resuelve Query.usuario(id). Un ID que no parsea o que no existe
// produce un error GraphQL, nunca un error de servidor.
func (r *Resolver) Usuario(p graphql.ResolveParams) (interface{}, error) {
	idRaw, _ := p.Args[campoID].(string)
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Usuario no encontrado con ID: %s", idRaw)
	}
	u, err := r.uc.ObtenerPorID(id)
	if err != nil {
		return nil, fmt.Errorf("Usuario no encontrado con ID: %s", idRaw)
	}
	return u, nil
}

// CrearUsuario resuelve Mutation.crearUsuario(input).
func (r *Resolver) CrearUsuario(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})

	if errores := validarDatosUsuario(input); len(errores) > 0 {
		return nil, domain.NewValidationError(errores...)
	}

	rol, err := r.obtenerRol(input[campoRolInput])
	if err != nil {
		return nil, err
	}

	username, _ := input[campoUsername].(string)
	email, _ := input[campoEmail].(string)
	passwd, _ := input[campoPassword].(string)
	nombre, _ := input[campoNombre].(string)
	apellido, _ := input[campoApellido].(string)

	u := &entity.Usuario{
		Username:     username,
		Email:        email,
		PasswordHash: passwd,
		Nombre:       nombre,
		Apellido:     apellido,
		Rol:          rol,
		Activo:       true,
	}
	creado, err := r.uc.Crear(u)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return nil, err
		}
		return nil, fmt.Errorf("Error al crear usuario: %v", err)
	}
	return creado, nil
}

// ActualizarUsuario resuelve Mutation.actualizarUsuario(input): para cada
// campo presente en el input se valida y se asigna; los ausentes se preservan.
func (r *Resolver) ActualizarUsuario(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})

	idRaw, _ := input[campoID].(string)
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("Se requiere el ID del usuario")
	}

	cambios := &dto.UsuarioCambios{ID: id}
	if v, ok := input[campoUsername]; ok {
		s, _ := v.(string)
		cambios.Username = &s
	}
	if v, ok := input[campoEmail]; ok {
		s, _ := v.(string)
		if !entity.PatronEmail.MatchString(s) {
			return nil, domain.NewValidationError("Email inválido")
		}
		cambios.Email = &s
	}
	if v, ok := input[campoPassword]; ok {
		s, _ := v.(string)
		if len(s) < 6 {
			return nil, domain.NewValidationError("La contraseña debe tener al menos 6 caracteres")
		}
		cambios.Password = &s
	}
	if v, ok := input[campoNombre]; ok {
		s, _ := v.(string)
		cambios.Nombre = &s
	}
	if v, ok := input[campoApellido]; ok {
		s, _ := v.(string)
		cambios.Apellido = &s
	}
	if v, ok := input[campoRolInput]; ok {
		rol, err := r.obtenerRol(v)
		if err != nil {
			return nil, err
		}
		cambios.RolID = &rol.ID
	}
	if v, ok := input[campoActivo]; ok {
		b, _ := v.(bool)
		cambios.Activo = &b
	}

	actualizado, err := r.uc.Actualizar(cambios)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return nil, err
		}
		return nil, fmt.Errorf("Error al actualizar usuario: %v", err)
	}
	return actualizado, nil
}

// EliminarUsuario resuelve Mutation.eliminarUsuario(id). Devuelve true si la
// fila fue eliminada.
func (r *Resolver) EliminarUsuario(p graphql.ResolveParams) (interface{}, error) {
	idRaw, _ := p.Args[campoID].(string)
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("Se requiere el ID del usuario")
	}
	if err := r.uc.Eliminar(id); err != nil {
		return nil, fmt.Errorf("Error al eliminar usuario: %v", err)
	}
	return true, nil
}

// validarDatosUsuario pre-valida el input de creación y acumula los mensajes.
func validarDatosUsuario(input map[string]interface{}) []string {
	var errores []string

	username, _ := input[campoUsername].(string)
	if strings.TrimSpace(username) == "" {
		errores = append(errores, "El nombre de usuario es requerido")
	}
	email, _ := input[campoEmail].(string)
	if !entity.PatronEmail.MatchString(email) {
		errores = append(errores, "Email inválido")
	}
	passwd, _ := input[campoPassword].(string)
	if len(passwd) < 6 {
		errores = append(errores, "La contraseña debe tener al menos 6 caracteres")
	}
	if _, ok := input[campoRolInput]; !ok {
		errores = append(errores, "El rol es requerido")
	}
	return errores
}

// obtenerRol normaliza el ID de rol (llega como string o como número según
// la fuente del input) y resuelve la referencia.
func (r *Resolver) obtenerRol(valor interface{}) (*entity.Rol, error) {
	var id int64
	switch v := valor.(type) {
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("Formato de ID de rol inválido")
		}
		id = parsed
	case int:
		id = int64(v)
	case int64:
		id = v
	case float64:
		id = int64(v)
	default:
		return nil, errors.New("Formato de ID de rol inválido")
	}

	rol, err := r.uc.ObtenerRol(id)
	if err != nil {
		return nil, fmt.Errorf("Error al buscar rol: %v", err)
	}
	if rol == nil {
		return nil, fmt.Errorf("Rol no encontrado con ID: %d", id)
	}
	return rol, nil
}
