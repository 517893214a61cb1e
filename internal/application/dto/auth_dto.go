package dto

import "time"

// LoginRequest credenciales del formulario de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse datos del principal autenticado (lo que el panel usa para decidir qué mostrar).
type SessionResponse struct {
	PrincipalID    string  `json:"id"`
	Name           string  `json:"nome"`
	Email          string  `json:"email"`
	Classification string  `json:"tipo_usuario"`
	Function       *string `json:"funcao"`
	TenantID       *string `json:"empresa_id"`
	Home           string  `json:"home"`
}

// LoginResponse token de sesión, su expiración y la ruta de inicio.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   SessionResponse `json:"sessao"`
}
