package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// TenderRepository puerto de persistencia para editais. Todas las operaciones quedan acotadas a un tenant.
type TenderRepository interface {
	Create(ctx context.Context, tender *entity.Tender) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Tender, error)
	Update(ctx context.Context, tender *entity.Tender) error
	// List ordena por data_disputa ascendente y, en empate, created_at descendente.
	List(ctx context.Context, tenantID string) ([]*entity.Tender, error)
	Summary(ctx context.Context, tenantID string, now time.Time) (*entity.TenderSummary, error)
}
