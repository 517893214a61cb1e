package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/application/auth"
	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/jobs"
	"github.com/jhoicas/lancei-admin/internal/application/realtime"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/session"
	apphttp "github.com/jhoicas/lancei-admin/internal/interfaces/http"
	"github.com/jhoicas/lancei-admin/internal/testutil/fakes"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	cookieName = "lancei_session"
	password   = "s3nha-forte"
	planID     = "6f1c2b1e-8d2a-4b7e-9a51-0c3f5e7d9b21"
)

type testEnv struct {
	app       *fiber.App
	authUC    *auth.AuthUseCase
	plans     *fakes.Plans
	requests  *fakes.AccessRequests
	companies *fakes.Companies
	tenders   *fakes.Tenders
}

// newTestEnv app completa (gate + router) sobre fakes en memoria con tres perfiles:
// admin interno, operador interno y cliente de la empresa t1.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	identity := fakes.NewIdentity()
	identity.Add("p-admin", "admin@lancei.com.br", password)
	identity.Add("p-oper", "oper@lancei.com.br", password)
	identity.Add("p-client", "maria@souza.com.br", password)

	admin, oper := entity.FunctionAdmin, entity.FunctionOperator
	tenant := "t1"
	users := fakes.NewUsers(
		entity.User{ID: "p-admin", Name: "Admin", Email: "admin@lancei.com.br", Classification: entity.ClassificationInternal, Function: &admin, Active: true},
		entity.User{ID: "p-oper", Name: "Oper", Email: "oper@lancei.com.br", Classification: entity.ClassificationInternal, Function: &oper, Active: true},
		entity.User{ID: "p-client", Name: "Maria", Email: "maria@souza.com.br", Classification: entity.ClassificationCustomer, TenantID: &tenant, Active: true},
	)
	companies := fakes.NewCompanies()
	companies.Put(entity.Company{ID: "t1", Name: "Souza Licitações", Status: entity.CompanyStatusActive})
	users.Companies = companies

	plans := fakes.NewPlans(entity.Plan{ID: planID, Name: "Básico", MonthlyPrice: decimal.NewFromInt(99)})
	requests := fakes.NewAccessRequests(entity.AccessRequest{
		ID: "r1", Name: "João", CompanyName: "Silva ME", CNPJ: "11.222.333/0001-81",
		Email: "joao@silva.com.br", Status: entity.AccessRequestPending,
	})
	tenders := fakes.NewTenders()
	notifications := fakes.NewNotifications()
	mailer := &fakes.Mailer{}
	reports := &fakes.Reports{}
	composer := emails.NewComposer("http://localhost:8080")

	authUC := auth.NewAuthUseCase(identity, session.NewMemoryStore(), users, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "lancei-test"})
	companyUC := usecase.NewCompanyUseCase(companies, plans, reports)
	dispatcher := jobs.NewNotificationDispatcher(notifications, users, mailer, composer)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		RequestUC:      access.NewRequestUseCase(requests),
		ApprovalUC:     access.NewApprovalUseCase(requests, companies, plans, users, identity, mailer, composer, true),
		CompanyUC:      companyUC,
		PlanUC:         usecase.NewPlanUseCase(plans),
		UserUC:         usecase.NewUserUseCase(users, identity, mailer, composer, true),
		NotificationUC: usecase.NewNotificationUseCase(notifications, dispatcher),
		TenderUC:       usecase.NewTenderUseCase(tenders, companies, reports),
		DashboardUC:    usecase.NewDashboardUseCase(companies, users, plans),
		Pending:        realtime.NewPendingCounter(companyUC.CountPending),
		Cookie:         apphttp.CookieConfig{Name: cookieName},
		AppName:        "lancei-test",
	})
	return &testEnv{app: app, authUC: authUC, plans: plans, requests: requests, companies: companies, tenders: tenders}
}

// login devuelve el token de sesión del e-mail indicado.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	out, err := e.authUC.Login(context.Background(), dto.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return out.Token
}

// do lanza la petición con la cookie de sesión (si token no está vacío) y cuerpo JSON opcional.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_AnonymousIsRedirectedToLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/admin/dashboard", "/admin/empresas", "/dashboard", "/dashboard/editais", "/auth/sessao"} {
		resp := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"), path)
	}
}

func TestGate_PublicAndExemptPaths(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/", "/health", apphttp.RequestAccessPath, apphttp.LoginPath} {
		resp := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestGate_InvalidTokenIsRedirected(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/admin/dashboard", "token.invalido.aqui", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))
}

func TestGate_LoginPageRedirectsValidSessionHome(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, apphttp.LoginPath, env.login(t, "admin@lancei.com.br"), nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, entity.InternalHome, resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, apphttp.LoginPath, env.login(t, "maria@souza.com.br"), nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, entity.CustomerHome, resp.Header.Get("Location"))
}

func TestGate_AreasAreSeparated(t *testing.T) {
	env := newTestEnv(t)
	internal := env.login(t, "admin@lancei.com.br")
	customer := env.login(t, "maria@souza.com.br")

	resp := env.do(t, http.MethodGet, "/dashboard/editais", internal, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, entity.InternalHome, resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/admin/empresas", customer, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, entity.CustomerHome, resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/admin/dashboard", internal, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/dashboard", customer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_AcceptsBearerHeader(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@lancei.com.br")

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogout_EndsSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@lancei.com.br")

	resp := env.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, apphttp.LoginPath, "", dto.LoginRequest{Email: "admin@lancei.com.br", Password: password})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			found = true
			assert.NotEmpty(t, c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "la respuesta debe fijar la cookie de sesión")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, apphttp.LoginPath, "", dto.LoginRequest{Email: "admin@lancei.com.br", Password: "errada"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, apphttp.CodeInvalidCredentials, body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel interno
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminDashboard_Counters(t *testing.T) {
	env := newTestEnv(t)
	env.companies.Put(entity.Company{ID: "t2", Name: "Nova", Status: entity.CompanyStatusPending})
	env.companies.Put(entity.Company{ID: "t3", Name: "Teste", Status: entity.CompanyStatusTrial})
	token := env.login(t, "oper@lancei.com.br")

	resp := env.do(t, http.MethodGet, "/admin/dashboard", token, nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.AdminDashboardResponse
	decode(t, resp, &out)
	assert.Equal(t, 3, out.TotalCompanies)
	assert.Equal(t, 1, out.TrialCompanies)
	assert.Equal(t, 1, out.PendingCompanies)
	assert.Equal(t, 3, out.ActiveUsers)
	assert.Equal(t, 1, out.TotalPlans)
}

// ──────────────────────────────────────────────────────────────────────────────
// Planes
// ──────────────────────────────────────────────────────────────────────────────

func TestPlans_DeleteRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@lancei.com.br")

	resp := env.do(t, http.MethodDelete, "/admin/planos/"+planID, token, nil)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, apphttp.CodeConfirmationRequired, body.Code)

	resp = env.do(t, http.MethodDelete, "/admin/planos/"+planID+"?confirmar=true", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p, err := env.plans.GetByID(context.Background(), planID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPlans_MutationsRequireAdminFunction(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "oper@lancei.com.br")

	resp := env.do(t, http.MethodPost, "/admin/planos", token, dto.CreatePlanRequest{Name: "avançado", MonthlyPrice: decimal.NewFromInt(199)})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/admin/planos/"+planID+"?confirmar=true", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/admin/planos", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPlans_CreateValidatesCatalogAndReloadsList(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@lancei.com.br")

	resp := env.do(t, http.MethodPost, "/admin/planos", token, dto.CreatePlanRequest{Name: "premium", MonthlyPrice: decimal.NewFromInt(10)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, apphttp.CodeValidation, errBody.Code)
	assert.Contains(t, errBody.Message, "nome")

	resp = env.do(t, http.MethodPost, "/admin/planos", token, dto.CreatePlanRequest{Name: "Avançado", MonthlyPrice: decimal.NewFromInt(199)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Message string             `json:"message"`
		Items   []dto.PlanResponse `json:"items"`
	}
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Message)
	assert.Len(t, body.Items, 2)
}

func TestPlans_TrialPlanCreatedInPanelIsApprovable(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@lancei.com.br")

	resp := env.do(t, http.MethodPost, "/admin/planos", token, dto.CreatePlanRequest{Name: "Teste (7 dias)", MonthlyPrice: decimal.Zero})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data dto.PlanResponse `json:"data"`
	}
	decode(t, resp, &created)
	require.NotEmpty(t, created.Data.ID)

	resp = env.do(t, http.MethodGet, "/admin/solicitacoes/planos", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var offered dto.PlanListResponse
	decode(t, resp, &offered)
	names := make([]string, 0, len(offered.Items))
	for _, p := range offered.Items {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Básico", "Teste (7 dias)"}, names)

	resp = env.do(t, http.MethodPost, "/admin/solicitacoes/r1/aprovar", token, dto.ApproveAccessRequest{PlanID: created.Data.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var approved struct {
		Data dto.ApprovalResponse `json:"data"`
	}
	decode(t, resp, &approved)

	company, err := env.companies.GetByID(context.Background(), approved.Data.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company)
	require.NotNil(t, company.PlanTier)
	assert.Equal(t, entity.PlanTierTrial, *company.PlanTier)
	assert.NotNil(t, company.TrialStartedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes de acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitRequest_ValidatesCNPJMask(t *testing.T) {
	env := newTestEnv(t)
	in := dto.SubmitAccessRequest{
		Name: "Ana", CompanyName: "Ana Licitações", CNPJ: "11222333000181",
		Email: "ana@licita.com.br", Justification: "Queremos acompanhar editais",
	}

	resp := env.do(t, http.MethodPost, apphttp.RequestAccessPath, "", in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	in.CNPJ = "11.222.333/0001-81"
	resp = env.do(t, http.MethodPost, apphttp.RequestAccessPath, "", in)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestReject_SecondDecisionConflicts(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "oper@lancei.com.br")

	resp := env.do(t, http.MethodPost, "/admin/solicitacoes/r1/rejeitar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.AccessRequestRejected, env.requests.Status("r1"))

	resp = env.do(t, http.MethodPost, "/admin/solicitacoes/r1/rejeitar", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, apphttp.CodeRequestNotPending, body.Code)
}

func TestAccessRequest_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@lancei.com.br")

	resp := env.do(t, http.MethodGet, "/admin/solicitacoes/ghost", token, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Área del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestTenders_ScopedToSessionTenant(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "maria@souza.com.br")
	require.NoError(t, env.tenders.Create(context.Background(), &entity.Tender{ID: "other", TenantID: "t2", Organ: "x", Status: entity.TenderInProgress}))

	resp := env.do(t, http.MethodPost, "/dashboard/editais", token, dto.CreateTenderRequest{
		Organ: "Prefeitura de Campinas", Number: "PE 12/2025", Platform: "ComprasNet",
		Link: "https://comprasnet.gov.br/12", DisputeAt: time.Now().Add(48 * time.Hour), ProposalDeadline: time.Now().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/dashboard/editais", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.TenderListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Prefeitura de Campinas", list.Items[0].Organ)

	resp = env.do(t, http.MethodGet, "/dashboard/editais/other", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
