package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/application/dto"
)

// PublicHandler páginas públicas: inicio y solicitud de acceso.
type PublicHandler struct {
	requests *access.RequestUseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(requests *access.RequestUseCase) *PublicHandler {
	return &PublicHandler{requests: requests}
}

// Home godoc
// @Summary      Página inicial
// @Tags         public
// @Produce      json
// @Router       / [get]
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"nome":             "Lancei",
		"login":            LoginPath,
		"solicitar_acesso": RequestAccessPath,
	})
}

// RequestAccessForm godoc
// @Summary      Campos del formulario de solicitud de acceso
// @Tags         public
// @Produce      json
// @Router       /auth/solicitar-acesso [get]
func (h *PublicHandler) RequestAccessForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"campos": []string{"nome", "empresa_nome", "cnpj", "email", "telefone", "justificativa"},
		"cnpj":   "00.000.000/0000-00",
	})
}

// SubmitRequest godoc
// @Summary      Enviar solicitud de acceso
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitAccessRequest  true  "Solicitud"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auth/solicitar-acesso [post]
func (h *PublicHandler) SubmitRequest(c *fiber.Ctx) error {
	var in dto.SubmitAccessRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.requests.Submit(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "solicitação enviada, aguarde o contato da equipe Lancei", out, nil)
}
