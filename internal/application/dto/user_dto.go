package dto

import "time"

// CreateInternalUserRequest alta de un miembro del personal interno.
// La contraseña no viaja: se genera una temporal y se envía por e-mail.
type CreateInternalUserRequest struct {
	Name     string `json:"nome" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Function string `json:"funcao" validate:"required,oneof=super_admin_lancei admin_lancei operador_lancei"`
}

// SetUserActiveRequest activa o desactiva un usuario.
type SetUserActiveRequest struct {
	Active *bool `json:"ativo" validate:"required"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"nome"`
	Email          string    `json:"email"`
	Classification string    `json:"tipo_usuario"`
	Function       *string   `json:"funcao"`
	TenantID       *string   `json:"empresa_id"`
	Active         bool      `json:"ativo"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}

// CreateInternalUserResponse resultado del alta: el usuario y si el e-mail con la contraseña salió.
type CreateInternalUserResponse struct {
	User       UserResponse `json:"usuario"`
	EmailSent  bool         `json:"email_enviado"`
	EmailError string       `json:"email_erro,omitempty"`
}
