package repository

import (
	"context"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// PlanRepository puerto de persistencia para planes.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) error
	// Delete elimina definitivamente. Devuelve domain.ErrNotFound si no existía.
	Delete(ctx context.Context, id string) error
	// List ordena por created_at descendente.
	List(ctx context.Context) ([]*entity.Plan, error)
	Count(ctx context.Context) (int, error)
}
