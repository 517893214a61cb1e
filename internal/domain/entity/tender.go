package entity

import "time"

// Estados de un edital.
const (
	TenderInProgress = "em_andamento"
	TenderFinished   = "finalizado"
	TenderCancelled  = "cancelado"
)

// Tender licitación pública (edital) seguida por una empresa cliente.
type Tender struct {
	ID               string
	TenantID         string
	Organ            string // nome_orgao
	Number           string // numero_edital
	Platform         string
	Link             string
	DisputeAt        time.Time // data_disputa
	ProposalDeadline time.Time // prazo_proposta
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsValidTenderStatus informa si s es un estado conocido.
func IsValidTenderStatus(s string) bool {
	switch s {
	case TenderInProgress, TenderFinished, TenderCancelled:
		return true
	}
	return false
}

// TenderSummary contadores del panel del cliente.
type TenderSummary struct {
	InProgress        int
	DisputesToday     int
	DeadlinesThisWeek int
	Finished          int
}
