package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lancei-admin/pkg/ptbr"
)

// Claves del catálogo de planes: nombre sin acentos, en minúsculas y sin sufijo entre paréntesis.
// "Teste (7 dias)", "teste" y "TESTE" comparten la clave PlanKeyTrial.
const (
	PlanKeyTrial    = "teste"
	PlanKeyBasic    = "basico"
	PlanKeyAdvanced = "avancado"
)

// PlanCatalog nombres admitidos al crear un plan desde el panel. Los mismos planes son los que
// se ofrecen al aprobar una solicitud de acceso. La base de datos no lo impone.
var PlanCatalog = []string{"teste", "básico", "avançado"}

// Plan representa un plan de suscripción.
type Plan struct {
	ID           string
	Name         string
	Description  string
	MonthlyPrice decimal.Decimal // preco_mensal, nunca negativo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTrial informa si el plan es el de prueba ("teste", "Teste (7 dias)").
func (p *Plan) IsTrial() bool {
	return PlanKey(p.Name) == PlanKeyTrial
}

// PlanKey clave de catálogo de name: sin acentos ni mayúsculas y sin el sufijo "(...)".
func PlanKey(name string) string {
	key := ptbr.Fold(name)
	if i := strings.Index(key, "("); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	return key
}

// InCatalog informa si name corresponde a un plan del catálogo.
func InCatalog(name string) bool {
	key := PlanKey(name)
	for _, n := range PlanCatalog {
		if PlanKey(n) == key {
			return true
		}
	}
	return false
}

// IsApprovalPlan informa si name está entre los planes ofrecidos en la aprobación.
// Es el mismo catálogo del panel: todo plan creable es aprobable.
func IsApprovalPlan(name string) bool {
	return InCatalog(name)
}
