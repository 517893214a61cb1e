package entity

import "time"

// Estados de una solicitud de acceso. aprovado y rejeitado son terminales.
const (
	AccessRequestPending  = "pendente"
	AccessRequestApproved = "aprovado"
	AccessRequestRejected = "rejeitado"
)

// AccessRequest solicitud pública de acceso de una empresa interesada (solicitacoes_acesso).
type AccessRequest struct {
	ID            string
	Name          string // nombre de la persona solicitante
	CompanyName   string
	CNPJ          string
	Email         string
	Phone         string
	Justification string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActionable solo las solicitudes pendientes admiten aprobar, rechazar o editar.
func (r *AccessRequest) IsActionable() bool {
	return r.Status == AccessRequestPending
}
