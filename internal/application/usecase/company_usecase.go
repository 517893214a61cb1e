package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
	"github.com/jhoicas/lancei-admin/pkg/cnpj"
)

// Filtros especiales del listado de empresas.
const (
	CompanyFilterAll     = "todos"
	CompanyFilterDefault = entity.CompanyStatusActive
)

// CompanyUseCase aplica reglas de negocio para empresas (tenants).
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	plans   repository.PlanRepository
	reports ports.ReportGenerator
	now     func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, plans repository.PlanRepository, reports ports.ReportGenerator) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, plans: plans, reports: reports, now: time.Now}
}

// List lista empresas por estado. Vacío = ativo; "todos" = sin filtro.
func (uc *CompanyUseCase) List(ctx context.Context, status string) (*dto.CompanyListResponse, error) {
	list, err := uc.list(ctx, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

func (uc *CompanyUseCase) list(ctx context.Context, status string) ([]*entity.Company, error) {
	filter, err := companyFilter(status)
	if err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, filter)
}

func companyFilter(status string) (repository.CompanyFilter, error) {
	switch status {
	case "":
		return repository.CompanyFilter{Status: CompanyFilterDefault}, nil
	case CompanyFilterAll:
		return repository.CompanyFilter{}, nil
	}
	if !entity.IsValidCompanyStatus(status) {
		return repository.CompanyFilter{}, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	return repository.CompanyFilter{Status: status}, nil
}

// Create registra una empresa desde el panel. Nace pendente.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := uc.checkPlan(ctx, in.PlanID); err != nil {
		return nil, err
	}
	now := uc.now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		CNPJ:      cnpj.Format(in.CNPJ),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Status:    entity.CompanyStatusPending,
		PlanID:    in.PlanID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, company.ID)
}

// GetByID obtiene una empresa por ID; nil si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// Update edita los datos de la empresa. El estado no cambia por aquí.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkPlan(ctx, in.PlanID); err != nil {
		return nil, err
	}
	company.Name = strings.TrimSpace(in.Name)
	company.CNPJ = cnpj.Format(in.CNPJ)
	company.Email = strings.ToLower(strings.TrimSpace(in.Email))
	company.PlanID = in.PlanID
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Deactivate baja lógica: pasa la empresa a inativo.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	return uc.setStatus(ctx, id, entity.CompanyStatusInactive)
}

// Activate pasa la empresa a ativo (aprobación manual o reactivación).
func (uc *CompanyUseCase) Activate(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	return uc.setStatus(ctx, id, entity.CompanyStatusActive)
}

func (uc *CompanyUseCase) setStatus(ctx context.Context, id, status string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !company.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, company.Status, status)
	}
	if err := uc.repo.UpdateStatus(ctx, id, status, uc.now()); err != nil {
		return nil, err
	}
	log.Info().Str("company_id", id).Str("from", company.Status).Str("to", status).Msg("status da empresa alterado")
	return uc.GetByID(ctx, id)
}

// CountPending cantidad de empresas pendentes (indicador del panel).
func (uc *CompanyUseCase) CountPending(ctx context.Context) (int, error) {
	return uc.repo.CountByStatus(ctx, entity.CompanyStatusPending)
}

// Report PDF del listado con el mismo filtro de List.
func (uc *CompanyUseCase) Report(ctx context.Context, status string) ([]byte, error) {
	list, err := uc.list(ctx, status)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = CompanyFilterDefault
	}
	return uc.reports.CompaniesReport(ctx, "Empresas ("+status+")", list)
}

func (uc *CompanyUseCase) checkPlan(ctx context.Context, planID *string) error {
	if planID == nil {
		return nil
	}
	plan, err := uc.plans.GetByID(ctx, *planID)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("%w: plano inexistente", domain.ErrInvalidInput)
	}
	return nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		CNPJ:           c.CNPJ,
		Email:          c.Email,
		Status:         c.Status,
		PlanID:         c.PlanID,
		PlanName:       c.PlanName,
		PlanTier:       c.PlanTier,
		TrialStartedAt: c.TrialStartedAt,
		TrialExpired:   c.TrialExpired(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
