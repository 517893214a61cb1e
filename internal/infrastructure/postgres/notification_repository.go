package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación sobre la tabla notificacoes.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, titulo, mensagem, destinatario, data_envio, status, enviado_em, falhou_em, COALESCE(erro, ''), created_at`

// Create persiste una notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notificacoes (id, titulo, mensagem, destinatario, data_envio, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, n.ID, n.Title, n.Message, n.Audience, n.SendAt, n.Status, n.CreatedAt); err != nil {
		return fmt.Errorf("insert notificacao: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notificacoes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notificacao: %w", err)
	}
	return n, nil
}

// List notificaciones por data_envio descendente.
func (r *NotificationRepo) List(ctx context.Context) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `SELECT `+notificationColumns+` FROM notificacoes ORDER BY data_envio DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notificacoes: %w", err)
	}
	list, err := scanAll(rows, scanNotification)
	if err != nil {
		return nil, fmt.Errorf("scan notificacao: %w", err)
	}
	return list, nil
}

// ListDue pendientes con data_envio <= now, las más antiguas primero.
func (r *NotificationRepo) ListDue(ctx context.Context, now time.Time) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+notificationColumns+` FROM notificacoes WHERE status = $1 AND data_envio <= $2 ORDER BY data_envio`,
		entity.NotificationPending, now,
	)
	if err != nil {
		return nil, fmt.Errorf("list notificacoes pendentes: %w", err)
	}
	list, err := scanAll(rows, scanNotification)
	if err != nil {
		return nil, fmt.Errorf("scan notificacao: %w", err)
	}
	return list, nil
}

// Claim toma la notificación para enviarla. La actualización condicional garantiza un único dueño
// entre el envío inmediato, el job y sus réplicas.
func (r *NotificationRepo) Claim(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notificacoes SET status = $2 WHERE id = $1 AND status = $3`,
		id, entity.NotificationSending, entity.NotificationPending,
	)
	if err != nil {
		return false, fmt.Errorf("reservar notificacao: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkSent marca enviada si estaba en envío.
func (r *NotificationRepo) MarkSent(ctx context.Context, id string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notificacoes SET status = $2, enviado_em = $3, erro = NULL WHERE id = $1 AND status = $4`,
		id, entity.NotificationSent, at, entity.NotificationSending,
	)
	if err != nil {
		return false, fmt.Errorf("marcar notificacao enviada: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkFailed marca fallida con el motivo y la hora si estaba en envío.
func (r *NotificationRepo) MarkFailed(ctx context.Context, id, reason string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notificacoes SET status = $2, erro = $3, falhou_em = $4 WHERE id = $1 AND status = $5`,
		id, entity.NotificationFailed, reason, at, entity.NotificationSending,
	)
	if err != nil {
		return false, fmt.Errorf("marcar notificacao falhou: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanNotification(row pgxScanner) (*entity.Notification, error) {
	var n entity.Notification
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.Audience, &n.SendAt, &n.Status, &n.SentAt, &n.FailedAt, &n.Error, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
