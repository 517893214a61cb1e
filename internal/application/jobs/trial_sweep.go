// Package jobs tareas de fondo: vencimiento de pruebas y envío de notificaciones programadas.
package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
	"github.com/jhoicas/lancei-admin/internal/domain/trial"
)

// TrialSweep marca como expiradas las empresas cuya prueba cumplió 7 días.
type TrialSweep struct {
	companies repository.CompanyRepository
}

// NewTrialSweep construye el barrido.
func NewTrialSweep(companies repository.CompanyRepository) *TrialSweep {
	return &TrialSweep{companies: companies}
}

// Name nombre del job para logs y flags.
func (j *TrialSweep) Name() string { return "trial_sweep" }

// Run devuelve las empresas actualizadas en esta ejecución. La actualización es condicional
// (plano = 'teste'), así que dos ejecuciones seguidas no repiten cambios.
func (j *TrialSweep) Run(ctx context.Context, now time.Time) ([]*entity.Company, error) {
	list, err := j.companies.ListOnTrial(ctx)
	if err != nil {
		return nil, err
	}
	var updated []*entity.Company
	for _, c := range list {
		if !trial.ShouldExpire(c, now) {
			continue
		}
		ok, err := j.companies.MarkTrialExpired(ctx, c.ID, now)
		if err != nil {
			return updated, err
		}
		if !ok {
			continue
		}
		expired := entity.PlanTierExpired
		c.PlanTier = &expired
		c.UpdatedAt = now
		updated = append(updated, c)
		log.Info().Str("company_id", c.ID).Int("dias", trial.ElapsedDays(*c.TrialStartedAt, now)).Msg("período de teste expirado")
	}
	log.Info().Int("candidatas", len(list)).Int("expiradas", len(updated)).Msg("varredura de testes concluída")
	return updated, nil
}
