package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/domain"
)

// TenderHandler editais y panel del cliente. Todo queda acotado al tenant de la sesión.
type TenderHandler struct {
	uc *usecase.TenderUseCase
}

// NewTenderHandler construye el handler.
func NewTenderHandler(uc *usecase.TenderUseCase) *TenderHandler {
	return &TenderHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Panel del cliente
// @Tags         cliente
// @Produce      json
// @Success      200  {object}  dto.CustomerDashboardResponse
// @Router       /dashboard [get]
func (h *TenderHandler) Dashboard(c *fiber.Ctx) error {
	tenantID, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Dashboard(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar editais
// @Tags         cliente
// @Produce      json
// @Success      200  {object}  dto.TenderListResponse
// @Router       /dashboard/editais [get]
func (h *TenderHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear edital
// @Tags         cliente
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenderRequest  true  "Edital"
// @Success      201   {object}  dto.ActionResponse
// @Router       /dashboard/editais [post]
func (h *TenderHandler) Create(c *fiber.Ctx) error {
	tenantID, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateTenderRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "edital cadastrado", out, h.reload(c, tenantID))
}

// GetByID godoc
// @Summary      Detalle de edital
// @Tags         cliente
// @Produce      json
// @Param        id   path  string  true  "ID del edital"
// @Success      200  {object}  dto.TenderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /dashboard/editais/{id} [get]
func (h *TenderHandler) GetByID(c *fiber.Ctx) error {
	tenantID, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "edital não encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar edital
// @Tags         cliente
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del edital"
// @Param        body  body  dto.UpdateTenderRequest  true  "Edital"
// @Success      200   {object}  dto.ActionResponse
// @Router       /dashboard/editais/{id} [put]
func (h *TenderHandler) Update(c *fiber.Ctx) error {
	tenantID, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateTenderRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "edital atualizado", out, h.reload(c, tenantID))
}

// Report godoc
// @Summary      Reporte PDF de editais
// @Tags         cliente
// @Produce      application/pdf
// @Router       /dashboard/editais/relatorio.pdf [get]
func (h *TenderHandler) Report(c *fiber.Ctx) error {
	tenantID, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.uc.Report(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "editais.pdf", pdf)
}

func (h *TenderHandler) reload(c *fiber.Ctx, tenantID string) func() (interface{}, error) {
	ctx := c.UserContext()
	return func() (interface{}, error) {
		out, err := h.uc.List(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		return out.Items, nil
	}
}

// tenantOf empresa de la sesión. Un cliente sin empresa no tiene acceso a su área.
func tenantOf(c *fiber.Ctx) (string, error) {
	s := GetSession(c)
	if s == nil {
		return "", domain.ErrUnauthorized
	}
	if s.TenantID == nil || *s.TenantID == "" {
		return "", domain.ErrForbidden
	}
	return *s.TenantID, nil
}
