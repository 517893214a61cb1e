package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
)

// AccessRequestHandler revisión de solicitudes de acceso por el personal interno.
type AccessRequestHandler struct {
	requests *access.RequestUseCase
	approval *access.ApprovalUseCase
	plans    *usecase.PlanUseCase
}

// NewAccessRequestHandler construye el handler.
func NewAccessRequestHandler(requests *access.RequestUseCase, approval *access.ApprovalUseCase, plans *usecase.PlanUseCase) *AccessRequestHandler {
	return &AccessRequestHandler{requests: requests, approval: approval, plans: plans}
}

// List godoc
// @Summary      Listar solicitudes de acceso
// @Tags         solicitacoes
// @Produce      json
// @Success      200  {object}  dto.AccessRequestListResponse
// @Router       /admin/solicitacoes [get]
func (h *AccessRequestHandler) List(c *fiber.Ctx) error {
	out, err := h.requests.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApprovalPlans godoc
// @Summary      Planes ofrecidos en la aprobación
// @Tags         solicitacoes
// @Produce      json
// @Success      200  {object}  dto.PlanListResponse
// @Router       /admin/solicitacoes/planos [get]
func (h *AccessRequestHandler) ApprovalPlans(c *fiber.Ctx) error {
	out, err := h.plans.ApprovalPlans(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de solicitud
// @Tags         solicitacoes
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.AccessRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/solicitacoes/{id} [get]
func (h *AccessRequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.requests.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "solicitação não encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar solicitud pendiente
// @Tags         solicitacoes
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la solicitud"
// @Param        body  body  dto.UpdateAccessRequest  true  "Datos"
// @Success      200   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/solicitacoes/{id} [put]
func (h *AccessRequestHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccessRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.requests.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "solicitação atualizada", out, h.reload(c))
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Description  Crea empresa, principal y usuario, marca la solicitud aprovado y envía la contraseña temporal.
// @Tags         solicitacoes
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la solicitud"
// @Param        body  body  dto.ApproveAccessRequest  true  "Plan"
// @Success      200   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /admin/solicitacoes/{id}/aprovar [post]
func (h *AccessRequestHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveAccessRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.approval.Approve(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	msg := "solicitação aprovada, acesso enviado por e-mail"
	if !out.EmailSent {
		msg = "solicitação aprovada, mas " + access.EmailFailedMessage
	}
	return respondAction(c, fiber.StatusOK, msg, out, h.reload(c))
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         solicitacoes
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ActionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /admin/solicitacoes/{id}/rejeitar [post]
func (h *AccessRequestHandler) Reject(c *fiber.Ctx) error {
	out, err := h.approval.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	msg := "solicitação rejeitada"
	if !out.EmailSent {
		msg = "solicitação rejeitada, mas " + access.EmailFailedMessage
	}
	return respondAction(c, fiber.StatusOK, msg, out, h.reload(c))
}

func (h *AccessRequestHandler) reload(c *fiber.Ctx) func() (interface{}, error) {
	ctx := c.UserContext()
	return func() (interface{}, error) {
		out, err := h.requests.List(ctx)
		if err != nil {
			return nil, err
		}
		return out.Items, nil
	}
}
