package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/workflow"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/testutil/fakes"
)

const (
	requestID   = "req-1"
	planBasic   = "plan-basico"
	planTrial   = "plan-teste"
	planPremium = "plan-premium"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type approvalEnv struct {
	requests  *fakes.AccessRequests
	companies *fakes.Companies
	plans     *fakes.Plans
	users     *fakes.Users
	identity  *fakes.Identity
	mailer    *fakes.Mailer
}

func newApprovalEnv(status string) *approvalEnv {
	return &approvalEnv{
		requests: fakes.NewAccessRequests(entity.AccessRequest{
			ID:          requestID,
			Name:        "Maria Souza",
			CompanyName: "Souza Licitações",
			CNPJ:        "11.222.333/0001-81",
			Email:       "maria@souza.com.br",
			Status:      status,
			CreatedAt:   fixedNow.Add(-time.Hour),
		}),
		companies: fakes.NewCompanies(),
		plans: fakes.NewPlans(
			entity.Plan{ID: planBasic, Name: "Básico", MonthlyPrice: decimal.RequireFromString("49.90")},
			entity.Plan{ID: planTrial, Name: "Teste (7 dias)", MonthlyPrice: decimal.Zero},
			entity.Plan{ID: planPremium, Name: "Premium", MonthlyPrice: decimal.RequireFromString("199")},
		),
		users:    fakes.NewUsers(),
		identity: fakes.NewIdentity(),
		mailer:   &fakes.Mailer{},
	}
}

func (e *approvalEnv) useCase(compensate bool) *access.ApprovalUseCase {
	return access.NewApprovalUseCase(e.requests, e.companies, e.plans, e.users, e.identity, e.mailer,
		emails.NewComposer("https://app.lancei.com.br"), compensate).
		WithPasswordGenerator(func() (string, error) { return "Tmp12345", nil }).
		WithClock(func() time.Time { return fixedNow })
}

// ─── Approve: camino feliz ───────────────────────────────────────────────────

func TestApprove_ProvisionsCompanyUserAndSendsEmail(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)

	out, err := env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planBasic})

	require.NoError(t, err)
	assert.Equal(t, entity.AccessRequestApproved, out.Request.Status)
	assert.False(t, out.Request.Actionable)
	assert.True(t, out.EmailSent)
	assert.Empty(t, out.EmailError)
	assert.Equal(t, entity.AccessRequestApproved, env.requests.Status(requestID))

	company, err := env.companies.GetByID(context.Background(), out.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "Souza Licitações", company.Name)
	assert.Equal(t, entity.CompanyStatusActive, company.Status)
	require.NotNil(t, company.PlanID)
	assert.Equal(t, planBasic, *company.PlanID)
	assert.False(t, company.OnTrial())

	user, err := env.users.GetByID(context.Background(), out.UserID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.ClassificationCustomer, user.Classification)
	require.NotNil(t, user.TenantID)
	assert.Equal(t, out.CompanyID, *user.TenantID)
	assert.True(t, user.Active)

	assert.Equal(t, "Tmp12345", env.identity.Password("maria@souza.com.br"))

	sent := env.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "maria@souza.com.br", sent[0].To)
	assert.Equal(t, emails.SubjectApproval, sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Tmp12345")
}

func TestApprove_TrialPlanMarksTier(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)

	out, err := env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planTrial})

	require.NoError(t, err)
	company, _ := env.companies.GetByID(context.Background(), out.CompanyID)
	require.NotNil(t, company)
	assert.True(t, company.OnTrial())
	require.NotNil(t, company.TrialStartedAt)
	assert.True(t, company.TrialStartedAt.Equal(fixedNow))
	assert.Equal(t, entity.CompanyStatusActive, company.Status)
}

// ─── Approve: validaciones previas ───────────────────────────────────────────

func TestApprove_RejectsDecidedRequest(t *testing.T) {
	for _, status := range []string{entity.AccessRequestApproved, entity.AccessRequestRejected} {
		t.Run(status, func(t *testing.T) {
			env := newApprovalEnv(status)

			_, err := env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planBasic})

			assert.ErrorIs(t, err, domain.ErrRequestNotPending)
			assert.Zero(t, env.companies.Len())
			assert.Zero(t, env.identity.Len())
			assert.Empty(t, env.mailer.Sent())
		})
	}
}

func TestApprove_UnknownRequest(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)

	_, err := env.useCase(true).Approve(context.Background(), "nope", dto.ApproveAccessRequest{PlanID: planBasic})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_PlanOutsideApprovalList(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)

	_, err := env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planPremium})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: "missing"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, entity.AccessRequestPending, env.requests.Status(requestID))
	assert.Zero(t, env.companies.Len())
}

// ─── Approve: fallos por paso ────────────────────────────────────────────────

type stepFailure struct {
	step   string
	inject func(env *approvalEnv, err error)
}

var stepFailures = []stepFailure{
	{access.StepCompany, func(env *approvalEnv, err error) { env.companies.FailOn("Create", err) }},
	{access.StepIdentity, func(env *approvalEnv, err error) { env.identity.FailOn("CreatePrincipal", err) }},
	{access.StepUser, func(env *approvalEnv, err error) { env.users.FailOn("Create", err) }},
	{access.StepRequest, func(env *approvalEnv, err error) { env.requests.FailOn("TransitionStatus", err) }},
}

func TestApprove_StepFailureWithCompensation(t *testing.T) {
	for _, tc := range stepFailures {
		t.Run(tc.step, func(t *testing.T) {
			env := newApprovalEnv(entity.AccessRequestPending)
			boom := errors.New("boom")
			tc.inject(env, boom)

			_, err := env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planBasic})

			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			step, ok := workflow.FailedStep(err)
			require.True(t, ok)
			assert.Equal(t, tc.step, step)

			assert.Zero(t, env.companies.Len(), "empresa debe deshacerse")
			assert.Zero(t, env.identity.Len(), "principal debe deshacerse")
			assert.Zero(t, env.users.Len(), "usuario debe deshacerse")
			assert.Equal(t, entity.AccessRequestPending, env.requests.Status(requestID))
			assert.Empty(t, env.mailer.Sent())
		})
	}
}

func TestApprove_StepFailureWithoutCompensationKeepsEffects(t *testing.T) {
	// Efectos que quedan de los pasos anteriores al que falla: empresas, principals, usuarios.
	kept := map[string][3]int{
		access.StepCompany:  {0, 0, 0},
		access.StepIdentity: {1, 0, 0},
		access.StepUser:     {1, 1, 0},
		access.StepRequest:  {1, 1, 1},
	}
	for _, tc := range stepFailures {
		t.Run(tc.step, func(t *testing.T) {
			env := newApprovalEnv(entity.AccessRequestPending)
			boom := errors.New("boom")
			tc.inject(env, boom)

			_, err := env.useCase(false).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planBasic})

			assert.ErrorIs(t, err, boom)
			step, ok := workflow.FailedStep(err)
			require.True(t, ok)
			assert.Equal(t, tc.step, step)

			want := kept[tc.step]
			assert.Equal(t, want[0], env.companies.Len(), "empresas")
			assert.Equal(t, want[1], env.identity.Len(), "principals")
			assert.Equal(t, want[2], env.users.Len(), "usuarios")
			assert.Equal(t, entity.AccessRequestPending, env.requests.Status(requestID))
			assert.Empty(t, env.mailer.Sent())
		})
	}
}

func TestApprove_DuplicatePrincipalEmail(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)
	env.identity.Add("existing", "maria@souza.com.br", "x")

	_, err := env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planBasic})

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	step, _ := workflow.FailedStep(err)
	assert.Equal(t, access.StepIdentity, step)
	assert.Zero(t, env.companies.Len())
	assert.Equal(t, 1, env.identity.Len())
}

func TestApprove_EmailFailureKeepsApproval(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)
	env.mailer.FailOn("Send", errors.New("smtp down"))

	out, err := env.useCase(true).Approve(context.Background(), requestID, dto.ApproveAccessRequest{PlanID: planBasic})

	require.NoError(t, err)
	assert.False(t, out.EmailSent)
	assert.Equal(t, access.EmailFailedMessage, out.EmailError)
	assert.Equal(t, entity.AccessRequestApproved, env.requests.Status(requestID))
	assert.Equal(t, 1, env.companies.Len())
	assert.Equal(t, 1, env.users.Len())
}

// ─── Reject ──────────────────────────────────────────────────────────────────

func TestReject_MarksRejectedAndSendsEmail(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)

	out, err := env.useCase(true).Reject(context.Background(), requestID)

	require.NoError(t, err)
	assert.Equal(t, entity.AccessRequestRejected, out.Request.Status)
	assert.True(t, out.EmailSent)
	assert.Equal(t, entity.AccessRequestRejected, env.requests.Status(requestID))
	sent := env.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, emails.SubjectRejection, sent[0].Subject)
	assert.Zero(t, env.companies.Len())
}

func TestReject_EmailFailureKeepsStatus(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestPending)
	env.mailer.FailOn("Send", errors.New("smtp down"))

	out, err := env.useCase(true).Reject(context.Background(), requestID)

	require.NoError(t, err)
	assert.False(t, out.EmailSent)
	assert.Equal(t, access.EmailFailedMessage, out.EmailError)
	assert.Equal(t, entity.AccessRequestRejected, env.requests.Status(requestID))
}

func TestReject_DecidedRequest(t *testing.T) {
	env := newApprovalEnv(entity.AccessRequestApproved)

	_, err := env.useCase(true).Reject(context.Background(), requestID)

	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
	assert.Empty(t, env.mailer.Sent())
}
