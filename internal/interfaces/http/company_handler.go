package http

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/realtime"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
)

// sseKeepAlive intervalo de los comentarios que mantienen viva la conexión SSE.
const sseKeepAlive = 25 * time.Second

// CompanyHandler maneja las peticiones HTTP para empresas.
type CompanyHandler struct {
	uc      *usecase.CompanyUseCase
	pending *realtime.PendingCounter
}

// NewCompanyHandler construye el handler. pending alimenta el stream del contador.
func NewCompanyHandler(uc *usecase.CompanyUseCase, pending *realtime.PendingCounter) *CompanyHandler {
	return &CompanyHandler{uc: uc, pending: pending}
}

// List godoc
// @Summary      Listar empresas
// @Tags         empresas
// @Produce      json
// @Param        status  query  string  false  "ativo|pendente|teste|inativo|todos"  default(ativo)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /admin/empresas [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.status(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear empresa (queda pendente)
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/empresas [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "empresa cadastrada", out, h.reload(c))
}

// GetByID godoc
// @Summary      Detalle de empresa
// @Tags         empresas
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/empresas/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "empresa não encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar empresa
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Datos"
// @Success      200   {object}  dto.ActionResponse
// @Router       /admin/empresas/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "empresa atualizada", out, h.reload(c))
}

// Deactivate godoc
// @Summary      Desactivar empresa (inativo)
// @Tags         empresas
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.ActionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /admin/empresas/{id}/desativar [post]
func (h *CompanyHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "empresa desativada", out, h.reload(c))
}

// Activate godoc
// @Summary      Activar empresa
// @Tags         empresas
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.ActionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /admin/empresas/{id}/ativar [post]
func (h *CompanyHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.Activate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "empresa ativada", out, h.reload(c))
}

// Report godoc
// @Summary      Reporte PDF de empresas
// @Tags         empresas
// @Produce      application/pdf
// @Param        status  query  string  false  "ativo|pendente|teste|inativo|todos"  default(ativo)
// @Router       /admin/empresas/relatorio.pdf [get]
func (h *CompanyHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.Report(c.UserContext(), h.status(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "empresas.pdf", pdf)
}

// PendingCount godoc
// @Summary      Cantidad de empresas pendientes
// @Tags         empresas
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /admin/empresas/pendentes [get]
func (h *CompanyHandler) PendingCount(c *fiber.Ctx) error {
	n, err := h.uc.CountPending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// PendingStream godoc
// @Summary      Contador de pendientes en vivo (Server-Sent Events)
// @Description  Envía el valor actual y un evento "pendentes" por cada recuento.
// @Tags         empresas
// @Produce      text/event-stream
// @Router       /admin/empresas/pendentes/stream [get]
func (h *CompanyHandler) PendingStream(c *fiber.Ctx) error {
	initial, err := h.uc.CountPending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	updates, cancel := h.pending.Subscribe()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		if writeCountEvent(w, initial) != nil {
			return
		}
		ticker := time.NewTicker(sseKeepAlive)
		defer ticker.Stop()
		for {
			select {
			case n := <-updates:
				if err := writeCountEvent(w, n); err != nil {
					log.Debug().Err(err).Msg("sse: cliente desconectado")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeCountEvent(w *bufio.Writer, n int) error {
	if _, err := fmt.Fprintf(w, "event: pendentes\ndata: {\"count\":%d}\n\n", n); err != nil {
		return err
	}
	return w.Flush()
}

func (h *CompanyHandler) status(c *fiber.Ctx) string {
	return c.Query("status", usecase.CompanyFilterDefault)
}

func (h *CompanyHandler) reload(c *fiber.Ctx) func() (interface{}, error) {
	status := h.status(c)
	ctx := c.UserContext()
	return func() (interface{}, error) {
		out, err := h.uc.List(ctx, status)
		if err != nil {
			return nil, err
		}
		return out.Items, nil
	}
}
