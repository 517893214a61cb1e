package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/application/auth"
	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/jobs"
	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/application/realtime"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/identity"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/lancei-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/lancei-admin/internal/interfaces/http"
	"github.com/jhoicas/lancei-admin/pkg/config"
	"github.com/jhoicas/lancei-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("identity", cfg.Identity.Provider).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DB.AutoMigrate {
		if err := migrations.Up(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	requestRepo := postgres.NewAccessRequestRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	tenderRepo := postgres.NewTenderRepository(pool)

	identityProvider, err := identity.New(ctx, cfg.Identity, postgres.NewPrincipalStore(pool))
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de identidad")
	}

	// Registro de sesiones: Redis si está configurado; si no, memoria del proceso.
	var sessions ports.SessionStore
	if cfg.Redis.Addr != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		sessions = redisStore
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: sesiones en memoria, se pierden al reiniciar")
		sessions = session.NewMemoryStore()
	}

	mailer := mail.New(cfg.SMTP)
	composer := emails.NewComposer(cfg.App.PublicURL)
	reports := infrapdf.NewMarotoReports()
	compensate := cfg.Workflow.CompensateOnFailure

	authUC := auth.NewAuthUseCase(identityProvider, sessions, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	requestUC := access.NewRequestUseCase(requestRepo)
	approvalUC := access.NewApprovalUseCase(
		requestRepo, companyRepo, planRepo, userRepo,
		identityProvider, mailer, composer, compensate,
	)
	companyUC := usecase.NewCompanyUseCase(companyRepo, planRepo, reports)
	planUC := usecase.NewPlanUseCase(planRepo)
	userUC := usecase.NewUserUseCase(userRepo, identityProvider, mailer, composer, compensate)
	dispatcher := jobs.NewNotificationDispatcher(notificationRepo, userRepo, mailer, composer)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, dispatcher)
	tenderUC := usecase.NewTenderUseCase(tenderRepo, companyRepo, reports)
	dashboardUC := usecase.NewDashboardUseCase(companyRepo, userRepo, planRepo)

	// Indicador de pendientes: LISTEN sobre empresas y recuento completo en cada evento.
	pending := realtime.NewPendingCounter(companyUC.CountPending)
	listener := postgres.NewChangeListener(pool, postgres.ChangesChannel)
	go listener.Run(ctx)
	go pending.Run(ctx, listener.Events())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		// Sin WriteTimeout: el stream de pendientes mantiene la respuesta abierta.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lancei Admin API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		RequestUC:      requestUC,
		ApprovalUC:     approvalUC,
		CompanyUC:      companyUC,
		PlanUC:         planUC,
		UserUC:         userUC,
		NotificationUC: notificationUC,
		TenderUC:       tenderUC,
		DashboardUC:    dashboardUC,
		Pending:        pending,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: !cfg.App.IsDevelopment(),
		},
		AppName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
