package dto

import "time"

// CreateCompanyRequest alta manual de una empresa desde el panel (queda pendente).
type CreateCompanyRequest struct {
	Name   string  `json:"nome" validate:"required,min=2,max=200"`
	CNPJ   string  `json:"cnpj" validate:"required,cnpj"`
	Email  string  `json:"email" validate:"required,email"`
	PlanID *string `json:"plano_id" validate:"omitempty,uuid"`
}

// UpdateCompanyRequest edición de los datos de una empresa. El estado cambia por sus propias rutas.
type UpdateCompanyRequest struct {
	Name   string  `json:"nome" validate:"required,min=2,max=200"`
	CNPJ   string  `json:"cnpj" validate:"required,cnpj"`
	Email  string  `json:"email" validate:"required,email"`
	PlanID *string `json:"plano_id" validate:"omitempty,uuid"`
}

// CompanyResponse salida de una empresa con el nombre de su plan.
type CompanyResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"nome"`
	CNPJ           string     `json:"cnpj"`
	Email          string     `json:"email"`
	Status         string     `json:"status"`
	PlanID         *string    `json:"plano_id"`
	PlanName       string     `json:"plano_nome,omitempty"`
	PlanTier       *string    `json:"plano"`
	TrialStartedAt *time.Time `json:"data_inicio_teste,omitempty"`
	TrialExpired   bool       `json:"teste_expirado"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CompanyListResponse listado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}
