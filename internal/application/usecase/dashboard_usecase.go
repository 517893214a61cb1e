package usecase

import (
	"context"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// DashboardUseCase contadores del panel interno.
type DashboardUseCase struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	plans     repository.PlanRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(companies repository.CompanyRepository, users repository.UserRepository, plans repository.PlanRepository) *DashboardUseCase {
	return &DashboardUseCase{companies: companies, users: users, plans: plans}
}

// Admin cuenta empresas, empresas en prueba, pendientes, usuarios activos y planes.
// Cada contador es una consulta exacta independiente.
func (uc *DashboardUseCase) Admin(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	var out dto.AdminDashboardResponse
	var err error
	if out.TotalCompanies, err = uc.companies.Count(ctx); err != nil {
		return nil, err
	}
	if out.TrialCompanies, err = uc.companies.CountByStatus(ctx, entity.CompanyStatusTrial); err != nil {
		return nil, err
	}
	if out.PendingCompanies, err = uc.companies.CountByStatus(ctx, entity.CompanyStatusPending); err != nil {
		return nil, err
	}
	if out.ActiveUsers, err = uc.users.CountActive(ctx); err != nil {
		return nil, err
	}
	if out.TotalPlans, err = uc.plans.Count(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}
