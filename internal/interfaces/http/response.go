package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
)

// respondAction responde una mutación exitosa con el registro y el listado recargado.
// Si la recarga falla la mutación ya está hecha: se responde sin items y se registra.
func respondAction(c *fiber.Ctx, status int, message string, data interface{}, reload func() (interface{}, error)) error {
	out := dto.ActionResponse{Message: message, Data: data}
	if reload != nil {
		items, err := reload()
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("recarga del listado tras mutación falló")
		} else {
			out.Items = items
		}
	}
	return c.Status(status).JSON(out)
}

// sendPDF responde un PDF como descarga.
func sendPDF(c *fiber.Ctx, filename string, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
