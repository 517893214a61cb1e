package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// UserRepository puerto de persistencia para los perfiles de usuario (tabla usuarios).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	// ListByClassification ordena por created_at descendente.
	ListByClassification(ctx context.Context, classification string) ([]*entity.User, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
	CountActive(ctx context.Context) (int, error)
	// ListRecipients usuarios cliente activos cuyas empresas pertenecen a la audiencia.
	ListRecipients(ctx context.Context, audience string) ([]*entity.User, error)
}
