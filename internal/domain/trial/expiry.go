// Package trial contiene la regla de vencimiento del período de prueba.
package trial

import (
	"math"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

const day = 24 * time.Hour

// ElapsedDays días completos transcurridos desde start: floor((now - start) / 24h).
// Si start es posterior a now devuelve un valor negativo.
func ElapsedDays(start, now time.Time) int {
	return int(math.Floor(float64(now.Sub(start)) / float64(day)))
}

// IsExpired informa si una prueba iniciada en start está vencida en now (≥ 7 días completos).
func IsExpired(start, now time.Time) bool {
	return ElapsedDays(start, now) >= entity.TrialDays
}

// ShouldExpire informa si el barrido debe marcar la empresa como expirada.
// Solo aplica a empresas marcadas con el plan de prueba y con fecha de inicio conocida.
func ShouldExpire(c *entity.Company, now time.Time) bool {
	if c == nil || !c.OnTrial() || c.TrialStartedAt == nil {
		return false
	}
	return IsExpired(*c.TrialStartedAt, now)
}
