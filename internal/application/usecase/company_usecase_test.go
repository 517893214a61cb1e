package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/testutil/fakes"
)

var base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func seedCompanies() *fakes.Companies {
	repo := fakes.NewCompanies()
	repo.Put(entity.Company{ID: "c1", Name: "Alfa", Status: entity.CompanyStatusActive, CreatedAt: base})
	repo.Put(entity.Company{ID: "c2", Name: "Beta", Status: entity.CompanyStatusPending, CreatedAt: base.Add(time.Hour)})
	repo.Put(entity.Company{ID: "c3", Name: "Gama", Status: entity.CompanyStatusInactive, CreatedAt: base.Add(2 * time.Hour)})
	repo.Put(entity.Company{ID: "c4", Name: "Delta", Status: entity.CompanyStatusActive, CreatedAt: base.Add(3 * time.Hour)})
	return repo
}

func TestCompanyUseCase_ListDefaultsToActive(t *testing.T) {
	uc := usecase.NewCompanyUseCase(seedCompanies(), fakes.NewPlans(), &fakes.Reports{})

	out, err := uc.List(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "c4", out.Items[0].ID, "más reciente primero")
	assert.Equal(t, "c1", out.Items[1].ID)
}

func TestCompanyUseCase_ListFilters(t *testing.T) {
	uc := usecase.NewCompanyUseCase(seedCompanies(), fakes.NewPlans(), &fakes.Reports{})

	all, err := uc.List(context.Background(), usecase.CompanyFilterAll)
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)

	pending, err := uc.List(context.Background(), entity.CompanyStatusPending)
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "c2", pending.Items[0].ID)

	_, err = uc.List(context.Background(), "bloqueado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyUseCase_CreateStartsPending(t *testing.T) {
	repo := fakes.NewCompanies()
	uc := usecase.NewCompanyUseCase(repo, fakes.NewPlans(), &fakes.Reports{})

	out, err := uc.Create(context.Background(), dto.CreateCompanyRequest{
		Name:  " Nova Empresa ",
		CNPJ:  "11222333000181",
		Email: "Contato@Nova.com.br",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusPending, out.Status)
	assert.Equal(t, "Nova Empresa", out.Name)
	assert.Equal(t, "11.222.333/0001-81", out.CNPJ)
	assert.Equal(t, "contato@nova.com.br", out.Email)
	assert.Equal(t, 1, repo.Len())
}

func TestCompanyUseCase_CreateWithUnknownPlan(t *testing.T) {
	repo := fakes.NewCompanies()
	uc := usecase.NewCompanyUseCase(repo, fakes.NewPlans(), &fakes.Reports{})
	planID := "missing"

	_, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "X", CNPJ: "11.222.333/0001-81", Email: "x@x.com", PlanID: &planID})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, repo.Len())
}

func TestCompanyUseCase_DeactivateAndActivate(t *testing.T) {
	repo := seedCompanies()
	uc := usecase.NewCompanyUseCase(repo, fakes.NewPlans(), &fakes.Reports{})

	out, err := uc.Deactivate(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusInactive, out.Status)

	out, err = uc.Activate(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusActive, out.Status)

	_, err = uc.Deactivate(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUseCase_RejectsInvalidTransition(t *testing.T) {
	repo := fakes.NewCompanies()
	repo.Put(entity.Company{ID: "t1", Status: entity.CompanyStatusTrial})
	repo.Put(entity.Company{ID: "x", Status: "bloqueado"})
	uc := usecase.NewCompanyUseCase(repo, fakes.NewPlans(), &fakes.Reports{})

	_, err := uc.Activate(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	out, err := uc.Activate(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusActive, out.Status)
}

func TestCompanyUseCase_CountPending(t *testing.T) {
	uc := usecase.NewCompanyUseCase(seedCompanies(), fakes.NewPlans(), &fakes.Reports{})

	n, err := uc.CountPending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCompanyUseCase_ReportUsesListFilter(t *testing.T) {
	reports := &fakes.Reports{}
	uc := usecase.NewCompanyUseCase(seedCompanies(), fakes.NewPlans(), reports)

	pdf, err := uc.Report(context.Background(), "")

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "Empresas (ativo)", reports.Title)
	assert.Len(t, reports.Companies, 2)
}

func TestDashboardUseCase_Admin(t *testing.T) {
	companies := seedCompanies()
	companies.Put(entity.Company{ID: "c5", Status: entity.CompanyStatusTrial, CreatedAt: base})
	users := fakes.NewUsers(
		entity.User{ID: "u1", Active: true},
		entity.User{ID: "u2", Active: false},
		entity.User{ID: "u3", Active: true},
	)
	plans := fakes.NewPlans(entity.Plan{ID: "p1"}, entity.Plan{ID: "p2"})
	uc := usecase.NewDashboardUseCase(companies, users, plans)

	out, err := uc.Admin(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, out.TotalCompanies)
	assert.Equal(t, 1, out.TrialCompanies)
	assert.Equal(t, 1, out.PendingCompanies)
	assert.Equal(t, 2, out.ActiveUsers)
	assert.Equal(t, 2, out.TotalPlans)
}
