package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cn2-g7/usuarios-api/internal/domain"
	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
	"github.com/cn2-g7/usuarios-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const columnasUsuario = `
	u.id, u.username, u.email, u.password_hash, u.nombre, u.apellido, u.activo, u.fecha_creacion,
	r.id, r.nombre, r.descripcion`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	var rol entity.Rol
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Nombre, &u.Apellido, &u.Activo, &u.FechaCreacion,
		&rol.ID, &rol.Nombre, &rol.Descripcion,
	)
	if err != nil {
		return nil, err
	}
	u.Rol = &rol
	return &u, nil
}

// List devuelve todos los usuarios con su rol (orden no especificado).
func (r *UsuarioRepo) List() ([]*entity.Usuario, error) {
	query := `
		SELECT ` + columnasUsuario + `
		FROM usuarios u JOIN roles r ON r.id = u.rol_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	query := `
		SELECT ` + columnasUsuario + `
		FROM usuarios u JOIN roles r ON r.id = u.rol_id
		WHERE u.id = $1`
	u, err := scanUsuario(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// Create persiste un nuevo usuario; el ID lo asigna la base de datos.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (username, email, password_hash, nombre, apellido, rol_id, activo, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		u.Username, u.Email, u.PasswordHash, u.Nombre, u.Apellido, u.Rol.ID, u.Activo, u.FechaCreacion,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// Update reescribe la fila del usuario.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	query := `
		UPDATE usuarios
		SET username = $2, email = $3, password_hash = $4, nombre = $5, apellido = $6, rol_id = $7, activo = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Nombre, u.Apellido, u.Rol.ID, u.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.UsuarioNotFoundError{ID: u.ID}
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UsuarioRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.UsuarioNotFoundError{ID: id}
	}
	return nil
}

// GetRol obtiene un rol por ID. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetRol(id int64) (*entity.Rol, error) {
	var rol entity.Rol
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, descripcion FROM roles WHERE id = $1`, id,
	).Scan(&rol.ID, &rol.Nombre, &rol.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol by id: %w", err)
	}
	return &rol, nil
}
