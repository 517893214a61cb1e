package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
)

// UserHandler personal interno.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios internos
// @Tags         usuarios
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /admin/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListInternal(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Alta de usuario interno (funciones admin)
// @Description  Genera una contraseña temporal y la envía por e-mail.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInternalUserRequest  true  "Usuario"
// @Success      201   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInternalUserRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateInternal(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	msg := "usuário criado, senha enviada por e-mail"
	if !out.EmailSent {
		msg = "usuário criado, mas o e-mail com a senha não foi enviado"
	}
	return respondAction(c, fiber.StatusCreated, msg, out, h.reload(c))
}

// SetActive godoc
// @Summary      Activar o desactivar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.SetUserActiveRequest  true  "Estado"
// @Success      200   {object}  dto.ActionResponse
// @Router       /admin/usuarios/{id}/ativo [patch]
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetUserActiveRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	actor := GetSession(c)
	out, err := h.uc.SetActive(c.UserContext(), actor.PrincipalID, c.Params("id"), *in.Active)
	if err != nil {
		return respondError(c, err)
	}
	msg := "usuário desativado"
	if out.Active {
		msg = "usuário ativado"
	}
	return respondAction(c, fiber.StatusOK, msg, out, h.reload(c))
}

func (h *UserHandler) reload(c *fiber.Ctx) func() (interface{}, error) {
	ctx := c.UserContext()
	return func() (interface{}, error) {
		out, err := h.uc.ListInternal(ctx)
		if err != nil {
			return nil, err
		}
		return out.Items, nil
	}
}
