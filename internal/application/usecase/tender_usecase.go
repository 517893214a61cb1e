package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// upcomingLimit disputas mostradas en el panel del cliente.
const upcomingLimit = 5

// TenderUseCase editais de un tenant. Todas las operaciones reciben el tenant de la sesión.
type TenderUseCase struct {
	repo      repository.TenderRepository
	companies repository.CompanyRepository
	reports   ports.ReportGenerator
	now       func() time.Time
}

// NewTenderUseCase construye el caso de uso.
func NewTenderUseCase(repo repository.TenderRepository, companies repository.CompanyRepository, reports ports.ReportGenerator) *TenderUseCase {
	return &TenderUseCase{repo: repo, companies: companies, reports: reports, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *TenderUseCase) WithClock(now func() time.Time) *TenderUseCase {
	uc.now = now
	return uc
}

// List editais del tenant por fecha de disputa.
func (uc *TenderUseCase) List(ctx context.Context, tenantID string) (*dto.TenderListResponse, error) {
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenderResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenderResponse(t))
	}
	return &dto.TenderListResponse{Items: items}, nil
}

// GetByID detalle; nil si no existe o es de otro tenant.
func (uc *TenderUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.TenderResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || t == nil {
		return nil, err
	}
	return toTenderResponse(t), nil
}

// Create registra un edital en andamento.
func (uc *TenderUseCase) Create(ctx context.Context, tenantID string, in dto.CreateTenderRequest) (*dto.TenderResponse, error) {
	now := uc.now()
	t := &entity.Tender{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		Organ:            strings.TrimSpace(in.Organ),
		Number:           strings.TrimSpace(in.Number),
		Platform:         strings.TrimSpace(in.Platform),
		Link:             strings.TrimSpace(in.Link),
		DisputeAt:        in.DisputeAt,
		ProposalDeadline: in.ProposalDeadline,
		Status:           entity.TenderInProgress,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenderResponse(t), nil
}

// Update edita un edital del tenant.
func (uc *TenderUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateTenderRequest) (*dto.TenderResponse, error) {
	if !entity.IsValidTenderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.Organ = strings.TrimSpace(in.Organ)
	t.Number = strings.TrimSpace(in.Number)
	t.Platform = strings.TrimSpace(in.Platform)
	t.Link = strings.TrimSpace(in.Link)
	t.DisputeAt = in.DisputeAt
	t.ProposalDeadline = in.ProposalDeadline
	t.Status = in.Status
	t.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenderResponse(t), nil
}

// Dashboard contadores y próximas disputas del tenant.
func (uc *TenderUseCase) Dashboard(ctx context.Context, tenantID string) (*dto.CustomerDashboardResponse, error) {
	company, err := uc.companies.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	summary, err := uc.repo.Summary(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	upcoming := make([]dto.TenderResponse, 0, upcomingLimit)
	for _, t := range list {
		if len(upcoming) == upcomingLimit {
			break
		}
		if t.Status == entity.TenderInProgress && !t.DisputeAt.Before(now) {
			upcoming = append(upcoming, *toTenderResponse(t))
		}
	}
	return &dto.CustomerDashboardResponse{
		CompanyName:       company.Name,
		InProgress:        summary.InProgress,
		DisputesToday:     summary.DisputesToday,
		DeadlinesThisWeek: summary.DeadlinesThisWeek,
		Finished:          summary.Finished,
		Upcoming:          upcoming,
	}, nil
}

// Report PDF de los editais del tenant.
func (uc *TenderUseCase) Report(ctx context.Context, tenantID string) ([]byte, error) {
	company, err := uc.companies.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return uc.reports.TendersReport(ctx, company, list)
}

func toTenderResponse(t *entity.Tender) *dto.TenderResponse {
	return &dto.TenderResponse{
		ID:               t.ID,
		Organ:            t.Organ,
		Number:           t.Number,
		Platform:         t.Platform,
		Link:             t.Link,
		DisputeAt:        t.DisputeAt,
		ProposalDeadline: t.ProposalDeadline,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
	}
}
