package dto

import "time"

// CreateTenderRequest alta de un edital.
type CreateTenderRequest struct {
	Organ            string    `json:"nome_orgao" validate:"required,max=200"`
	Number           string    `json:"numero_edital" validate:"required,max=100"`
	Platform         string    `json:"plataforma" validate:"required,max=100"`
	Link             string    `json:"link_edital" validate:"required,http_url"`
	DisputeAt        time.Time `json:"data_disputa" validate:"required"`
	ProposalDeadline time.Time `json:"prazo_proposta" validate:"required"`
}

// UpdateTenderRequest edición de un edital.
type UpdateTenderRequest struct {
	Organ            string    `json:"nome_orgao" validate:"required,max=200"`
	Number           string    `json:"numero_edital" validate:"required,max=100"`
	Platform         string    `json:"plataforma" validate:"required,max=100"`
	Link             string    `json:"link_edital" validate:"required,http_url"`
	DisputeAt        time.Time `json:"data_disputa" validate:"required"`
	ProposalDeadline time.Time `json:"prazo_proposta" validate:"required"`
	Status           string    `json:"status" validate:"required,oneof=em_andamento finalizado cancelado"`
}

// TenderResponse salida de un edital.
type TenderResponse struct {
	ID               string    `json:"id"`
	Organ            string    `json:"nome_orgao"`
	Number           string    `json:"numero_edital"`
	Platform         string    `json:"plataforma"`
	Link             string    `json:"link_edital"`
	DisputeAt        time.Time `json:"data_disputa"`
	ProposalDeadline time.Time `json:"prazo_proposta"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// TenderListResponse listado de editais.
type TenderListResponse struct {
	Items []TenderResponse `json:"items"`
}
