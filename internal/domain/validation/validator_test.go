package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
	"github.com/cn2-g7/usuarios-api/internal/domain/validation"
)

func usuarioValido() *entity.Usuario {
	return &entity.Usuario{
		Username:     "ana",
		Email:        "ana@x.com",
		PasswordHash: "secret7",
		Nombre:       "Ana",
		Apellido:     "P",
		Rol:          &entity.Rol{ID: 1, Nombre: "admin"},
		Activo:       true,
	}
}

func TestValidar_UsuarioValidoSinViolaciones(t *testing.T) {
	assert.Empty(t, validation.Validar(usuarioValido()))
}

func TestValidar_CamposVacios(t *testing.T) {
	u := &entity.Usuario{}
	violaciones := validation.Validar(u)

	mensajes := validation.Mensajes(violaciones)
	assert.Equal(t, []string{
		"El nombre de usuario es requerido",
		"Email inválido",
		"La contraseña es requerida",
		"El nombre es requerido",
		"El apellido es requerido",
		"El rol es requerido",
	}, mensajes, "todas las restricciones se reportan, en orden de declaración")
}

func TestValidar_EmailInvalido(t *testing.T) {
	casos := []struct {
		email  string
		valido bool
	}{
		{"ana@x.com", true},
		{"a.b+c_d-e@dominio", true},
		{"sin-arroba", false},
		{"@dominio.com", false},
		{"ana@", false},
		{"", false},
	}
	for _, c := range casos {
		u := usuarioValido()
		u.Email = c.email
		violaciones := validation.Validar(u)
		if c.valido {
			assert.Empty(t, violaciones, "email %q debe ser válido", c.email)
		} else {
			assert.Contains(t, validation.Mensajes(violaciones), "Email inválido", "email %q debe ser inválido", c.email)
		}
	}
}

func TestValidar_RolNulo(t *testing.T) {
	u := usuarioValido()
	u.Rol = nil

	violaciones := validation.Validar(u)
	assert.Len(t, violaciones, 1)
	assert.Equal(t, "rol", violaciones[0].Campo)
	assert.Equal(t, "El rol es requerido", violaciones[0].Mensaje)
}

// El validador no debe mutar la entidad.
func TestValidar_NoMuta(t *testing.T) {
	u := usuarioValido()
	copia := *u
	_ = validation.Validar(u)
	assert.Equal(t, copia, *u)
}
