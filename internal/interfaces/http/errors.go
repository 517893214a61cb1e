package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/workflow"
	"github.com/jhoicas/lancei-admin/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidBody          = "INVALID_BODY"
	CodeValidation           = "VALIDATION"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeForbidden            = "FORBIDDEN"
	CodeConflict             = "CONFLICT"
	CodeEmailExists          = "EMAIL_EXISTS"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeRequestNotPending    = "REQUEST_NOT_PENDING"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeWorkflowStep         = "WORKFLOW_STEP_FAILED"
	CodeInternal             = "INTERNAL"
)

// errorStatus traduce un error de dominio a status HTTP, código y mensaje para el toast.
func errorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, CodeNotFound, "registro não encontrado"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, CodeInvalidCredentials, "e-mail ou senha inválidos"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized, "sessão inválida ou expirada"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden, "acesso negado"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, CodeEmailExists, "e-mail já cadastrado"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, CodeInvalidTransition, err.Error()
	case errors.Is(err, domain.ErrRequestNotPending):
		return fiber.StatusConflict, CodeRequestNotPending, "a solicitação já foi decidida"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodeConflict, err.Error()
	case errors.Is(err, domain.ErrConfirmationRequired):
		return fiber.StatusPreconditionRequired, CodeConfirmationRequired, "confirme a operação com confirmar=true"
	}
	if step, ok := workflow.FailedStep(err); ok {
		return fiber.StatusInternalServerError, CodeWorkflowStep, "falha na etapa " + step
	}
	return fiber.StatusInternalServerError, CodeInternal, "erro interno, tente novamente"
}

// respondError escribe el ErrorResponse correspondiente a err. Los 5xx quedan en el log.
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error en handler")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "corpo da requisição inválido"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: msg})
}

// ErrorHandler manejador de errores de Fiber: errores no tratados por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
	}
	return respondError(c, err)
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status < fiber.StatusInternalServerError {
		return "BAD_REQUEST"
	}
	return CodeInternal
}
