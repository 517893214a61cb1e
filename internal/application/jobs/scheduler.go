package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RunFunc ejecución de un job en el instante now.
type RunFunc func(ctx context.Context, now time.Time) error

// Scheduler agenda los jobs con expresiones cron de 5 campos o descriptores (@every 1m).
// Una ejecución no se solapa con la anterior del mismo job.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	stop context.CancelFunc
}

// NewScheduler crea el planificador. ctx acota todas las ejecuciones.
func NewScheduler(ctx context.Context) *Scheduler {
	ctx, stop := context.WithCancel(ctx)
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})))
	return &Scheduler{cron: c, ctx: ctx, stop: stop}
}

// Add registra un job.
func (s *Scheduler) Add(name, spec string, run RunFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := run(s.ctx, start); err != nil {
			log.Error().Err(err).Str("job", name).Msg("job falhou")
			return
		}
		log.Debug().Str("job", name).Dur("duracao", time.Since(start)).Msg("job concluído")
	})
	if err != nil {
		return fmt.Errorf("job %s: expressão %q: %w", name, spec, err)
	}
	log.Info().Str("job", name).Str("spec", spec).Msg("job agendado")
	return nil
}

// Start arranca el planificador en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop cancela el contexto de los jobs y espera a que terminen los que están corriendo.
func (s *Scheduler) Stop() {
	s.stop()
	<-s.cron.Stop().Done()
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
