// jobs ejecuta los procesos programados: expiración de pruebas y envío de notificaciones.
//
// Uso:
//
//	go run ./cmd/jobs                      # agenda según JOBS_*_CRON hasta SIGINT/SIGTERM
//	go run ./cmd/jobs --once               # una ejecución de todos los jobs
//	go run ./cmd/jobs --once --job=trial_sweep
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/jobs"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/mail"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/lancei-admin/pkg/config"
	"github.com/jhoicas/lancei-admin/pkg/logger"
)

type job struct {
	name string
	spec string
	run  jobs.RunFunc
}

func main() {
	once := pflag.Bool("once", false, "ejecuta los jobs una vez y termina")
	only := pflag.String("job", "", "ejecuta solo este job (trial_sweep | notifications)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "jobs"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	sweep := jobs.NewTrialSweep(companyRepo)
	dispatcher := jobs.NewNotificationDispatcher(
		postgres.NewNotificationRepository(pool),
		postgres.NewUserRepository(pool),
		mail.New(cfg.SMTP),
		emails.NewComposer(cfg.App.PublicURL),
	)

	sweepLog := log.Component(sweep.Name())
	dispatchLog := log.Component(dispatcher.Name())

	all := []job{
		{
			name: sweep.Name(),
			spec: cfg.Jobs.TrialSweepCron,
			run: func(ctx context.Context, now time.Time) error {
				expired, err := sweep.Run(ctx, now)
				sweepLog.Info().Int("expiradas", len(expired)).Msg("barrido de pruebas")
				return err
			},
		},
		{
			name: dispatcher.Name(),
			spec: cfg.Jobs.NotificationsCron,
			run: func(ctx context.Context, now time.Time) error {
				res, err := dispatcher.Run(ctx, now)
				dispatchLog.Debug().Int("enviadas", res.Sent).Int("falhas", res.Failed).
					Int("ignoradas", res.Skipped).Msg("despacho de notificações")
				return err
			},
		},
	}

	var selected []job
	for _, j := range all {
		if *only == "" || *only == j.name {
			selected = append(selected, j)
		}
	}
	if len(selected) == 0 {
		log.Fatal().Str("job", *only).Msg("job desconocido")
	}

	if *once {
		failed := false
		for _, j := range selected {
			if err := j.run(ctx, time.Now()); err != nil {
				log.Error().Err(err).Str("job", j.name).Msg("job falhou")
				failed = true
			}
		}
		if failed {
			pool.Close()
			os.Exit(1)
		}
		return
	}

	scheduler := jobs.NewScheduler(ctx)
	for _, j := range selected {
		if err := scheduler.Add(j.name, j.spec, j.run); err != nil {
			log.Fatal().Err(err).Msg("agendar job")
		}
	}
	scheduler.Start()
	log.Info().Int("jobs", len(selected)).Msg("planificador iniciado")

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, esperando jobs en curso...")
	scheduler.Stop()
	log.Info().Msg("planificador detenido")
}
