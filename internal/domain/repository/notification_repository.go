package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// NotificationRepository puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	// List ordena por data_envio descendente.
	List(ctx context.Context) ([]*entity.Notification, error)
	// ListDue pendientes con data_envio <= now, las más antiguas primero.
	ListDue(ctx context.Context, now time.Time) ([]*entity.Notification, error)
	// Claim pasa la notificación de pendente a enviando. Devuelve false si otro proceso ya la tomó
	// o ya no estaba pendiente: quien recibe false no debe enviar.
	Claim(ctx context.Context, id string) (bool, error)
	// MarkSent y MarkFailed solo actúan sobre notificaciones en envío; devuelven false si no se aplicó.
	MarkSent(ctx context.Context, id string, at time.Time) (bool, error)
	MarkFailed(ctx context.Context, id, reason string, at time.Time) (bool, error)
}
