package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
	"github.com/jhoicas/lancei-admin/pkg/ptbr"
)

// PlanUseCase casos de uso CRUD para planes.
type PlanUseCase struct {
	repo repository.PlanRepository
	now  func() time.Time
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo, now: time.Now}
}

// List lista los planes, más recientes primero.
func (uc *PlanUseCase) List(ctx context.Context) (*dto.PlanListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPlanList(list), nil
}

// ApprovalPlans planes ofrecidos en el modal de aprobación, ordenados por nombre.
// Usa la misma comparación que la aprobación (entity.IsApprovalPlan).
func (uc *PlanUseCase) ApprovalPlans(ctx context.Context) (*dto.PlanListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	approvable := make([]*entity.Plan, 0, len(list))
	for _, p := range list {
		if entity.IsApprovalPlan(p.Name) {
			approvable = append(approvable, p)
		}
	}
	sort.SliceStable(approvable, func(i, j int) bool {
		return ptbr.Fold(approvable[i].Name) < ptbr.Fold(approvable[j].Name)
	})
	return toPlanList(approvable), nil
}

// GetByID obtiene un plan por ID; nil si no existe.
func (uc *PlanUseCase) GetByID(ctx context.Context, id string) (*dto.PlanResponse, error) {
	plan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}
	return toPlanResponse(plan), nil
}

// Create crea un plan.
func (uc *PlanUseCase) Create(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if in.MonthlyPrice.IsNegative() {
		return nil, fmt.Errorf("%w: preço mensal negativo", domain.ErrInvalidInput)
	}
	now := uc.now()
	plan := &entity.Plan{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		MonthlyPrice: in.MonthlyPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Update actualiza un plan.
func (uc *PlanUseCase) Update(ctx context.Context, id string, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	if in.MonthlyPrice.IsNegative() {
		return nil, fmt.Errorf("%w: preço mensal negativo", domain.ErrInvalidInput)
	}
	plan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	plan.Name = strings.TrimSpace(in.Name)
	plan.Description = strings.TrimSpace(in.Description)
	plan.MonthlyPrice = in.MonthlyPrice
	plan.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Delete elimina definitivamente. Sin confirmed no se toca la base.
func (uc *PlanUseCase) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return uc.repo.Delete(ctx, id)
}

func toPlanList(list []*entity.Plan) *dto.PlanListResponse {
	items := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPlanResponse(p))
	}
	return &dto.PlanListResponse{Items: items}
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	return &dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		MonthlyPrice: p.MonthlyPrice,
		PriceLabel:   ptbr.Money(p.MonthlyPrice),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
