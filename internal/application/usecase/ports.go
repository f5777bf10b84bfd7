package usecase

import (
	"context"

	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
	"github.com/cn2-g7/usuarios-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil,
// rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.UsuarioRepository) error) error
}

// EventPublisher emite eventos de dominio en modo best-effort: los fallos de
// entrega se registran y se descartan, nunca se propagan al llamador.
type EventPublisher interface {
	PublishUserCreated(u *entity.Usuario)
	PublishUserUpdated(u *entity.Usuario)
	PublishUserDeleted(id int64)
	PublishUserRetrieved(u *entity.Usuario)
}
