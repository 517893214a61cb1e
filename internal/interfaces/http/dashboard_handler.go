package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/usecase"
)

// DashboardHandler panel del personal interno.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Admin godoc
// @Summary      Contadores del panel interno
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.Admin(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
