package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// AccessRequestRepository puerto de persistencia para solicitudes de acceso.
type AccessRequestRepository interface {
	Create(ctx context.Context, req *entity.AccessRequest) error
	GetByID(ctx context.Context, id string) (*entity.AccessRequest, error)
	// Update persiste los datos editables (no el estado) mientras la solicitud siga pendiente.
	// Devuelve false si la solicitud ya no estaba pendiente.
	Update(ctx context.Context, req *entity.AccessRequest) (bool, error)
	// List ordena por created_at descendente.
	List(ctx context.Context) ([]*entity.AccessRequest, error)
	// TransitionStatus cambia el estado solo si el actual es from. Devuelve false si no se aplicó.
	TransitionStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error)
}
