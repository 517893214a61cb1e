package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// CompanyFilter filtros del listado de empresas. Status vacío = todas.
type CompanyFilter struct {
	Status string
}

// CompanyRepository define el puerto de persistencia para empresas (tenants).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// Update persiste nombre, CNPJ, email y plan. No toca el estado.
	Update(ctx context.Context, company *entity.Company) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	// List ordena por created_at descendente e incluye el nombre del plan.
	List(ctx context.Context, filter CompanyFilter) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	// ListOnTrial empresas con plano = 'teste'.
	ListOnTrial(ctx context.Context) ([]*entity.Company, error)
	// MarkTrialExpired pasa plano de 'teste' a 'expirado'. Devuelve false si la empresa ya no estaba en prueba.
	MarkTrialExpired(ctx context.Context, id string, at time.Time) (bool, error)
}
