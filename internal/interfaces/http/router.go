package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/application/auth"
	"github.com/jhoicas/lancei-admin/internal/application/realtime"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	RequestUC      *access.RequestUseCase
	ApprovalUC     *access.ApprovalUseCase
	CompanyUC      *usecase.CompanyUseCase
	PlanUC         *usecase.PlanUseCase
	UserUC         *usecase.UserUseCase
	NotificationUC *usecase.NotificationUseCase
	TenderUC       *usecase.TenderUseCase
	DashboardUC    *usecase.DashboardUseCase
	Pending        *realtime.PendingCounter
	Cookie         CookieConfig
	AppName        string
}

// Router instala el gate y registra las rutas. Todo lo registrado aquí pasa por el gate.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(Gate(deps.AuthUC, deps.Cookie.Name))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Públicas
	public := NewPublicHandler(deps.RequestUC)
	app.Get("/", public.Home)
	app.Get(RequestAccessPath, public.RequestAccessForm)
	app.Post(RequestAccessPath, public.SubmitRequest)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	app.Get(LoginPath, authHandler.LoginPage)
	app.Post(LoginPath, authHandler.Login)
	app.Post("/auth/logout", authHandler.Logout)
	app.Get("/auth/sessao", authHandler.Session)

	// Área interna
	admin := app.Group("/admin")
	admin.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).Admin)

	companies := admin.Group("/empresas")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Pending)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/relatorio.pdf", companyHandler.Report)
	companies.Get("/pendentes", companyHandler.PendingCount)
	companies.Get("/pendentes/stream", companyHandler.PendingStream)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Post("/:id/desativar", companyHandler.Deactivate)
	companies.Post("/:id/ativar", companyHandler.Activate)

	plans := admin.Group("/planos")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Get("/", planHandler.List)
	plans.Post("/", RequireFunction(entity.AdminFunctions...), planHandler.Create)
	plans.Get("/:id", planHandler.GetByID)
	plans.Put("/:id", planHandler.Update)
	plans.Delete("/:id", RequireFunction(entity.AdminFunctions...), planHandler.Delete)

	users := admin.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", RequireFunction(entity.AdminFunctions...), userHandler.Create)
	users.Patch("/:id/ativo", userHandler.SetActive)

	requests := admin.Group("/solicitacoes")
	requestHandler := NewAccessRequestHandler(deps.RequestUC, deps.ApprovalUC, deps.PlanUC)
	requests.Get("/", requestHandler.List)
	requests.Get("/planos", requestHandler.ApprovalPlans)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Put("/:id", requestHandler.Update)
	requests.Post("/:id/aprovar", requestHandler.Approve)
	requests.Post("/:id/rejeitar", requestHandler.Reject)

	notifications := admin.Group("/notificacoes")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/", notificationHandler.Create)

	// Área del cliente
	tenderHandler := NewTenderHandler(deps.TenderUC)
	app.Get("/dashboard", tenderHandler.Dashboard)
	tenders := app.Group("/dashboard/editais")
	tenders.Get("/", tenderHandler.List)
	tenders.Post("/", tenderHandler.Create)
	tenders.Get("/relatorio.pdf", tenderHandler.Report)
	tenders.Get("/:id", tenderHandler.GetByID)
	tenders.Put("/:id", tenderHandler.Update)
}
