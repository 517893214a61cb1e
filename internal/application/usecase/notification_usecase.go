package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// NotificationSender entrega una notificación pendiente a su audiencia.
type NotificationSender interface {
	DispatchOne(ctx context.Context, n *entity.Notification) error
}

// NotificationUseCase alta y consulta de notificaciones masivas.
type NotificationUseCase struct {
	repo   repository.NotificationRepository
	sender NotificationSender
	now    func() time.Time
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, sender NotificationSender) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, sender: sender, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *NotificationUseCase) WithClock(now func() time.Time) *NotificationUseCase {
	uc.now = now
	return uc
}

// List notificaciones por fecha de envío descendente.
func (uc *NotificationUseCase) List(ctx context.Context) (*dto.NotificationListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{Items: items}, nil
}

// Create guarda la notificación como pendiente. Las inmediatas se entregan en la misma llamada;
// un fallo de entrega queda registrado en la fila y no invalida el alta.
func (uc *NotificationUseCase) Create(ctx context.Context, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if !entity.IsValidAudience(in.Audience) {
		return nil, fmt.Errorf("%w: destinatário %q", domain.ErrInvalidInput, in.Audience)
	}
	now := uc.now()
	sendAt := now
	if !in.SendNow {
		if in.ScheduledAt == nil {
			return nil, fmt.Errorf("%w: data de agendamento obrigatória", domain.ErrInvalidInput)
		}
		if !in.ScheduledAt.After(now) {
			return nil, fmt.Errorf("%w: data de agendamento deve ser futura", domain.ErrInvalidInput)
		}
		sendAt = *in.ScheduledAt
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(in.Title),
		Message:   strings.TrimSpace(in.Message),
		Audience:  in.Audience,
		SendAt:    sendAt,
		Status:    entity.NotificationPending,
		CreatedAt: now,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if in.SendNow {
		err := uc.sender.DispatchOne(ctx, n)
		switch {
		case errors.Is(err, domain.ErrAlreadyClaimed):
			log.Info().Str("notification_id", n.ID).Msg("envio imediato já assumido pelo job")
		case err != nil:
			log.Error().Err(err).Str("notification_id", n.ID).Msg("envio imediato falhou")
		}
	}
	stored, err := uc.repo.GetByID(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrNotFound
	}
	return toNotificationResponse(stored), nil
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Audience:  n.Audience,
		SendAt:    n.SendAt,
		Status:    n.Status,
		SentAt:    n.SentAt,
		FailedAt:  n.FailedAt,
		Error:     n.Error,
		CreatedAt: n.CreatedAt,
	}
}
