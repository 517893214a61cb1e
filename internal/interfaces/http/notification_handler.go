package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// NotificationHandler avisos masivos.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notificacoes
// @Produce      json
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /admin/notificacoes [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear notificación (inmediata o programada)
// @Tags         notificacoes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotificationRequest  true  "Notificación"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /admin/notificacoes [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	var msg string
	switch out.Status {
	case entity.NotificationSent:
		msg = "notificação enviada"
	case entity.NotificationFailed:
		msg = "notificação registrada, mas o envio falhou"
	case entity.NotificationSending:
		msg = "notificação em envio"
	default:
		msg = "notificação agendada"
	}
	return respondAction(c, fiber.StatusCreated, msg, out, func() (interface{}, error) {
		list, err := h.uc.List(c.UserContext())
		if err != nil {
			return nil, err
		}
		return list.Items, nil
	})
}
