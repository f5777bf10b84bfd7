package repository

import "github.com/cn2-g7/usuarios-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// GetByID y GetRol devuelven (nil, nil) cuando no existe fila.
type UsuarioRepository interface {
	List() ([]*entity.Usuario, error)
	GetByID(id int64) (*entity.Usuario, error)
	// Create asigna el ID generado por el almacén sobre la entidad recibida.
	// Devuelve domain.ErrDuplicado en violación de unicidad.
	Create(u *entity.Usuario) error
	// Update reescribe la fila con el ID de la entidad. Devuelve
	// *domain.UsuarioNotFoundError si no existe y domain.ErrDuplicado en
	// violación de unicidad.
	Update(u *entity.Usuario) error
	// Delete devuelve *domain.UsuarioNotFoundError si no existe la fila.
	Delete(id int64) error
	GetRol(id int64) (*entity.Rol, error)
}
