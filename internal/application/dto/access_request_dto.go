package dto

import "time"

// SubmitAccessRequest formulario público de solicitud de acceso.
type SubmitAccessRequest struct {
	Name          string `json:"nome" validate:"required,min=2,max=200"`
	CompanyName   string `json:"empresa_nome" validate:"required,min=2,max=200"`
	CNPJ          string `json:"cnpj" validate:"required,cnpj"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"telefone" validate:"omitempty,max=20"`
	Justification string `json:"justificativa" validate:"required,max=2000"`
}

// UpdateAccessRequest edición de una solicitud pendiente desde su detalle. El estado no es editable.
type UpdateAccessRequest struct {
	Name          string `json:"nome" validate:"required,min=2,max=200"`
	CompanyName   string `json:"empresa_nome" validate:"required,min=2,max=200"`
	CNPJ          string `json:"cnpj" validate:"required,cnpj"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"telefone" validate:"omitempty,max=20"`
	Justification string `json:"justificativa" validate:"required,max=2000"`
}

// ApproveAccessRequest plan elegido en el modal de aprobación.
type ApproveAccessRequest struct {
	PlanID string `json:"plano_id" validate:"required,uuid"`
}

// AccessRequestResponse salida de una solicitud. Actionable indica si el panel debe mostrar acciones.
type AccessRequestResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"nome"`
	CompanyName   string    `json:"empresa_nome"`
	CNPJ          string    `json:"cnpj"`
	Email         string    `json:"email"`
	Phone         string    `json:"telefone"`
	Justification string    `json:"justificativa"`
	Status        string    `json:"status"`
	Actionable    bool      `json:"acoes_disponiveis"`
	CreatedAt     time.Time `json:"created_at"`
}

// AccessRequestListResponse listado de solicitudes.
type AccessRequestListResponse struct {
	Items []AccessRequestResponse `json:"items"`
}

// ApprovalResponse resultado de aprobar: empresa y usuario creados, y estado del e-mail.
type ApprovalResponse struct {
	Request    AccessRequestResponse `json:"solicitacao"`
	CompanyID  string                `json:"empresa_id"`
	UserID     string                `json:"usuario_id"`
	EmailSent  bool                  `json:"email_enviado"`
	EmailError string                `json:"email_erro,omitempty"`
}

// RejectionResponse resultado de rechazar.
type RejectionResponse struct {
	Request    AccessRequestResponse `json:"solicitacao"`
	EmailSent  bool                  `json:"email_enviado"`
	EmailError string                `json:"email_erro,omitempty"`
}
