// Package memory implementa el puerto de persistencia en memoria. Se usa en
// los tests de los tres adaptadores de superficie y del caso de uso.
package memory

import (
	"context"
	"sync"

	"github.com/cn2-g7/usuarios-api/internal/domain"
	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
	"github.com/cn2-g7/usuarios-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo almacén en memoria de usuarios y roles. Devuelve y recibe
// copias: cada llamador trabaja con una instantánea desacoplada, como con
// filas de base de datos.
type UsuarioRepo struct {
	mu       sync.Mutex
	usuarios map[int64]*entity.Usuario
	roles    map[int64]*entity.Rol
	nextID   int64
}

// NewUsuarioRepo construye el almacén vacío.
func NewUsuarioRepo() *UsuarioRepo {
	return &UsuarioRepo{
		usuarios: make(map[int64]*entity.Usuario),
		roles:    make(map[int64]*entity.Rol),
	}
}

// SeedRol registra un rol disponible para las búsquedas.
func (r *UsuarioRepo) SeedRol(rol *entity.Rol) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *rol
	r.roles[rol.ID] = &copia
}

func clonar(u *entity.Usuario) *entity.Usuario {
	copia := *u
	if u.Rol != nil {
		rol := *u.Rol
		copia.Rol = &rol
	}
	return &copia
}

// List devuelve todos los usuarios.
func (r *UsuarioRepo) List() ([]*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Usuario
	for _, u := range r.usuarios {
		list = append(list, clonar(u))
	}
	return list, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return nil, nil
	}
	return clonar(u), nil
}

// Create asigna un ID secuencial y guarda. Username y email son únicos.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existente := range r.usuarios {
		if existente.Username == u.Username || existente.Email == u.Email {
			return domain.ErrDuplicado
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.usuarios[u.ID] = clonar(u)
	return nil
}

// Update reescribe la fila con el ID de la entidad.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.usuarios[u.ID]; !ok {
		return &domain.UsuarioNotFoundError{ID: u.ID}
	}
	for id, existente := range r.usuarios {
		if id != u.ID && (existente.Username == u.Username || existente.Email == u.Email) {
			return domain.ErrDuplicado
		}
	}
	r.usuarios[u.ID] = clonar(u)
	return nil
}

// Delete elimina la fila.
func (r *UsuarioRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.usuarios[id]; !ok {
		return &domain.UsuarioNotFoundError{ID: id}
	}
	delete(r.usuarios, id)
	return nil
}

// GetRol devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetRol(id int64) (*entity.Rol, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rol, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	copia := *rol
	return &copia, nil
}

// TxRunner ejecuta el callback directamente sobre el almacén. Cada operación
// del caso de uso hace a lo sumo una escritura al final del callback, así que
// un fallo previo no deja escrituras parciales visibles.
type TxRunner struct {
	Repo repository.UsuarioRepository
}

// Run ejecuta fn con el repositorio del runner.
func (t *TxRunner) Run(ctx context.Context, fn func(repo repository.UsuarioRepository) error) error {
	return fn(t.Repo)
}
