package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicado violación de restricción única (username o email ya registrados).
// Hacia el exterior se reporta como error interno.
var ErrDuplicado = errors.New("violación de restricción única")

// ValidationError agrupa los mensajes de las restricciones violadas.
type ValidationError struct {
	Violaciones []string
}

// NewValidationError construye el error con una o más violaciones.
func NewValidationError(violaciones ...string) *ValidationError {
	return &ValidationError{Violaciones: violaciones}
}

func (e *ValidationError) Error() string {
	return "Error de validación: " + strings.Join(e.Violaciones, ", ")
}

// Extensions expone las violaciones en el sobre de error GraphQL
// ({extensions: {validationErrors: [...]}}).
func (e *ValidationError) Extensions() map[string]interface{} {
	return map[string]interface{}{"validationErrors": e.Violaciones}
}

// UsuarioNotFoundError no existe fila con ese ID.
type UsuarioNotFoundError struct {
	ID int64
}

func (e *UsuarioNotFoundError) Error() string {
	return fmt.Sprintf("Usuario no encontrado con ID: %d", e.ID)
}
