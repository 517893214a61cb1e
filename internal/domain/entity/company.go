package entity

import "time"

// Estados del ciclo de vida de una empresa (tabla empresas.status).
const (
	CompanyStatusPending  = "pendente"
	CompanyStatusTrial    = "teste"
	CompanyStatusActive   = "ativo"
	CompanyStatusInactive = "inativo"
)

// Marcadores de la columna empresas.plano. El barrido de pruebas vencidas pasa de teste a expirado.
const (
	PlanTierTrial   = "teste"
	PlanTierExpired = "expirado"
)

// TrialDays duración del período de prueba.
const TrialDays = 7

// companyTransitions transiciones permitidas. Solo ativo <-> inativo es reversible.
var companyTransitions = map[string][]string{
	CompanyStatusPending:  {CompanyStatusTrial, CompanyStatusActive, CompanyStatusInactive},
	CompanyStatusTrial:    {CompanyStatusActive, CompanyStatusInactive},
	CompanyStatusActive:   {CompanyStatusInactive},
	CompanyStatusInactive: {CompanyStatusActive},
}

// Company representa un tenant del SaaS: la organización cliente que contrata un plan.
type Company struct {
	ID             string
	Name           string
	CNPJ           string
	Email          string
	Status         string  // ver constantes CompanyStatus*
	PlanID         *string // nil = sin plan asignado
	PlanName       string  // nombre del plan (join con planos), solo lectura
	PlanTier       *string // teste | expirado | nil
	TrialStartedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidCompanyStatus informa si s es un estado conocido.
func IsValidCompanyStatus(s string) bool {
	_, ok := companyTransitions[s]
	return ok
}

// CanTransitionTo informa si la empresa puede pasar al estado next.
// Permanecer en el mismo estado siempre es válido.
func (c *Company) CanTransitionTo(next string) bool {
	if c.Status == next {
		return true
	}
	for _, s := range companyTransitions[c.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// OnTrial informa si la empresa está marcada con el plan de prueba.
func (c *Company) OnTrial() bool {
	return c.PlanTier != nil && *c.PlanTier == PlanTierTrial
}

// TrialExpired informa si el barrido ya marcó la prueba como vencida.
func (c *Company) TrialExpired() bool {
	return c.PlanTier != nil && *c.PlanTier == PlanTierExpired
}
