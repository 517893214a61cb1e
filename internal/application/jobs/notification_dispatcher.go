package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// maxErrorLength límite del motivo guardado en notificacoes.erro.
const maxErrorLength = 500

// DispatchResult resumen de una ejecución del despachante.
// Skipped cuenta las notificaciones que otro proceso tomó entre el listado y el envío.
type DispatchResult struct {
	Sent    int
	Failed  int
	Skipped int
}

// NotificationDispatcher entrega notificaciones pendientes vencidas a su audiencia por e-mail.
type NotificationDispatcher struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	mailer        ports.Mailer
	composer      *emails.Composer
	now           func() time.Time
}

// NewNotificationDispatcher construye el despachante.
func NewNotificationDispatcher(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	mailer ports.Mailer,
	composer *emails.Composer,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		composer:      composer,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (d *NotificationDispatcher) WithClock(now func() time.Time) *NotificationDispatcher {
	d.now = now
	return d
}

// Name nombre del job para logs y flags.
func (d *NotificationDispatcher) Name() string { return "notifications" }

// Run despacha todas las pendientes con data_envio <= now.
func (d *NotificationDispatcher) Run(ctx context.Context, now time.Time) (DispatchResult, error) {
	var res DispatchResult
	due, err := d.notifications.ListDue(ctx, now)
	if err != nil {
		return res, err
	}
	for _, n := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err := d.DispatchOne(ctx, n)
		switch {
		case errors.Is(err, domain.ErrAlreadyClaimed):
			res.Skipped++
		case err != nil:
			res.Failed++
		default:
			res.Sent++
		}
	}
	if len(due) > 0 {
		log.Info().Int("enviadas", res.Sent).Int("falhas", res.Failed).Int("ignoradas", res.Skipped).
			Msg("notificações despachadas")
	}
	return res, nil
}

// DispatchOne toma la notificación (pendente → enviando), la envía a cada destinatario y la marca
// enviada o fallida. Si otro proceso ya la tomó no envía nada y devuelve domain.ErrAlreadyClaimed.
// Una fila que queda en enviando por una caída no se reintenta.
func (d *NotificationDispatcher) DispatchOne(ctx context.Context, n *entity.Notification) error {
	claimed, err := d.notifications.Claim(ctx, n.ID)
	if err != nil {
		return err
	}
	if !claimed {
		log.Debug().Str("notification_id", n.ID).Msg("notificação já assumida por outro processo")
		return domain.ErrAlreadyClaimed
	}
	recipients, err := d.users.ListRecipients(ctx, n.Audience)
	if err != nil {
		return d.fail(ctx, n, fmt.Errorf("destinatários: %w", err))
	}
	var errs []error
	for _, u := range recipients {
		msg, err := d.composer.Broadcast(u.Name, u.Email, n.Title, n.Message)
		if err == nil {
			err = d.mailer.Send(ctx, msg)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u.Email, err))
		}
	}
	if len(errs) > 0 {
		return d.fail(ctx, n, errors.Join(errs...))
	}
	ok, err := d.notifications.MarkSent(ctx, n.ID, d.now())
	if err != nil {
		return err
	}
	if !ok {
		log.Warn().Str("notification_id", n.ID).Msg("notificação já não estava em envio")
	}
	log.Debug().Str("notification_id", n.ID).Int("destinatarios", len(recipients)).Msg("notificação enviada")
	return nil
}

func (d *NotificationDispatcher) fail(ctx context.Context, n *entity.Notification, cause error) error {
	reason := cause.Error()
	if len(reason) > maxErrorLength {
		reason = reason[:maxErrorLength]
	}
	reason = strings.ToValidUTF8(reason, "")
	if _, err := d.notifications.MarkFailed(ctx, n.ID, reason, d.now()); err != nil {
		log.Error().Err(err).Str("notification_id", n.ID).Msg("não foi possível registrar a falha")
	}
	log.Error().Err(cause).Str("notification_id", n.ID).Msg("notificação falhou")
	return cause
}
