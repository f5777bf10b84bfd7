package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cn2-g7/usuarios-api/internal/application/dto"
	"github.com/cn2-g7/usuarios-api/internal/domain"
	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
	"github.com/cn2-g7/usuarios-api/internal/domain/repository"
	"github.com/cn2-g7/usuarios-api/internal/domain/validation"
	"github.com/cn2-g7/usuarios-api/pkg/password"
)

// UsuarioUseCase es el único dueño del protocolo de escritura:
// validar -> hashear -> persistir -> commit -> publicar. Cada escritura
// exitosa produce exactamente un evento; una escritura fallida, ninguno.
type UsuarioUseCase struct {
	repo             repository.UsuarioRepository
	tx               TxRunner
	passwords        *password.Service
	events           EventPublisher
	publicarLecturas bool
}

// NewUsuarioUseCase construye el caso de uso con sus puertos.
// publicarLecturas controla la emisión de UserRetrieved en lecturas.
func NewUsuarioUseCase(
	repo repository.UsuarioRepository,
	tx TxRunner,
	passwords *password.Service,
	events EventPublisher,
	publicarLecturas bool,
) *UsuarioUseCase {
	return &UsuarioUseCase{
		repo:             repo,
		tx:               tx,
		passwords:        passwords,
		events:           events,
		publicarLecturas: publicarLecturas,
	}
}

// ObtenerTodos lista todos los usuarios y emite un UserRetrieved por cada uno,
// en orden de iteración. Un fallo de publicación no trunca la lista.
func (uc *UsuarioUseCase) ObtenerTodos() ([]*entity.Usuario, error) {
	usuarios, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	if uc.publicarLecturas {
		for _, u := range usuarios {
			uc.events.PublishUserRetrieved(u)
		}
	}
	return usuarios, nil
}

// ObtenerPorID devuelve el usuario y emite UserRetrieved. Si no existe,
// devuelve UsuarioNotFoundError sin publicar nada.
func (uc *UsuarioUseCase) ObtenerPorID(id int64) (*entity.Usuario, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.UsuarioNotFoundError{ID: id}
	}
	if uc.publicarLecturas {
		uc.events.PublishUserRetrieved(u)
	}
	return u, nil
}

// ObtenerRol busca un rol por ID ((nil, nil) si no existe).
func (uc *UsuarioUseCase) ObtenerRol(id int64) (*entity.Rol, error) {
	return uc.repo.GetRol(id)
}

// Crear valida la entidad tal como llega, reemplaza la contraseña por su
// digest, inserta dentro de una transacción y publica UserCreated tras el
// commit. El rol debe existir.
func (uc *UsuarioUseCase) Crear(u *entity.Usuario) (*entity.Usuario, error) {
	if v := validation.Validar(u); len(v) > 0 {
		return nil, domain.NewValidationError(validation.Mensajes(v)...)
	}

	digest, err := uc.passwords.Hash(u.PasswordHash)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = digest
	if u.FechaCreacion.IsZero() {
		u.FechaCreacion = time.Now()
	}

	err = uc.tx.Run(context.Background(), func(repo repository.UsuarioRepository) error {
		rol, err := repo.GetRol(u.Rol.ID)
		if err != nil {
			return err
		}
		if rol == nil {
			return domain.NewValidationError(fmt.Sprintf("Rol no encontrado con ID: %d", u.Rol.ID))
		}
		u.Rol = rol
		return repo.Create(u)
	})
	if err != nil {
		return nil, err
	}

	uc.events.PublishUserCreated(u)
	return u, nil
}

// Actualizar aplica una actualización parcial dentro de una transacción:
// lee la fila, asigna los campos presentes, valida la entidad resultante y
// escribe. La contraseña solo se re-hashea cuando la entrada difiere del
// digest almacenado (idempotencia en replays). Publica UserUpdated tras el
// commit.
func (uc *UsuarioUseCase) Actualizar(cambios *dto.UsuarioCambios) (*entity.Usuario, error) {
	if cambios.ID == 0 {
		return nil, domain.NewValidationError("Se requiere el ID del usuario")
	}

	var actualizado *entity.Usuario
	err := uc.tx.Run(context.Background(), func(repo repository.UsuarioRepository) error {
		existente, err := repo.GetByID(cambios.ID)
		if err != nil {
			return err
		}
		if existente == nil {
			return &domain.UsuarioNotFoundError{ID: cambios.ID}
		}

		if cambios.Username != nil {
			existente.Username = *cambios.Username
		}
		if cambios.Email != nil {
			existente.Email = *cambios.Email
		}
		if cambios.Password != nil && *cambios.Password != existente.PasswordHash {
			digest, err := uc.passwords.Hash(*cambios.Password)
			if err != nil {
				return err
			}
			existente.PasswordHash = digest
		}
		if cambios.Nombre != nil {
			existente.Nombre = *cambios.Nombre
		}
		if cambios.Apellido != nil {
			existente.Apellido = *cambios.Apellido
		}
		if cambios.RolID != nil {
			rol, err := repo.GetRol(*cambios.RolID)
			if err != nil {
				return err
			}
			if rol == nil {
				return domain.NewValidationError(fmt.Sprintf("Rol no encontrado con ID: %d", *cambios.RolID))
			}
			existente.Rol = rol
		}
		if cambios.Activo != nil {
			existente.Activo = *cambios.Activo
		}

		if v := validation.Validar(existente); len(v) > 0 {
			return domain.NewValidationError(validation.Mensajes(v)...)
		}
		if err := repo.Update(existente); err != nil {
			return err
		}
		actualizado = existente
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.PublishUserUpdated(actualizado)
	return actualizado, nil
}

// Eliminar borra el usuario dentro de una transacción y publica UserDeleted.
// Si no existe, devuelve UsuarioNotFoundError sin publicar nada.
func (uc *UsuarioUseCase) Eliminar(id int64) error {
	err := uc.tx.Run(context.Background(), func(repo repository.UsuarioRepository) error {
		return repo.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.events.PublishUserDeleted(id)
	return nil
}
