package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest entrada para crear un plan. preco_mensal acepta número o string decimal.
type CreatePlanRequest struct {
	Name         string          `json:"nome" validate:"required,plan_name"`
	Description  string          `json:"descricao" validate:"omitempty,max=500"`
	MonthlyPrice decimal.Decimal `json:"preco_mensal"`
}

// UpdatePlanRequest edición de un plan.
type UpdatePlanRequest struct {
	Name         string          `json:"nome" validate:"required,plan_name"`
	Description  string          `json:"descricao" validate:"omitempty,max=500"`
	MonthlyPrice decimal.Decimal `json:"preco_mensal"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"nome"`
	Description  string          `json:"descricao"`
	MonthlyPrice decimal.Decimal `json:"preco_mensal"`
	PriceLabel   string          `json:"preco_formatado"` // R$ 99,90
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PlanListResponse listado de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
}
