package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
)

// PlanHandler CRUD de planes.
type PlanHandler struct {
	uc *usecase.PlanUseCase
}

// NewPlanHandler construye el handler.
func NewPlanHandler(uc *usecase.PlanUseCase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// List godoc
// @Summary      Listar planes
// @Tags         planos
// @Produce      json
// @Success      200  {object}  dto.PlanListResponse
// @Router       /admin/planos [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plan (funciones admin)
// @Tags         planos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Plan"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /admin/planos [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "plano criado", out, h.reload(c))
}

// GetByID godoc
// @Summary      Detalle de plan
// @Tags         planos
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/planos/{id} [get]
func (h *PlanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "plano não encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar plan
// @Tags         planos
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del plan"
// @Param        body  body  dto.UpdatePlanRequest  true  "Plan"
// @Success      200   {object}  dto.ActionResponse
// @Router       /admin/planos/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "plano atualizado", out, h.reload(c))
}

// Delete godoc
// @Summary      Eliminar plan (funciones admin, requiere confirmar=true)
// @Tags         planos
// @Produce      json
// @Param        id         path   string  true  "ID del plan"
// @Param        confirmar  query  bool    true  "Confirmación explícita"
// @Success      200  {object}  dto.ActionResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /admin/planos/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), c.QueryBool("confirmar", false)); err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "plano excluído", nil, h.reload(c))
}

func (h *PlanHandler) reload(c *fiber.Ctx) func() (interface{}, error) {
	ctx := c.UserContext()
	return func() (interface{}, error) {
		out, err := h.uc.List(ctx)
		if err != nil {
			return nil, err
		}
		return out.Items, nil
	}
}
