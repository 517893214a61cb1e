package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrRequestNotPending    = errors.New("la solicitud ya fue decidida")
	ErrConfirmationRequired = errors.New("la operación requiere confirmación explícita")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrAlreadyClaimed       = errors.New("otro proceso ya tomó el registro")
)
