// Package identity adaptadores de ports.IdentityProvider: principals locales en PostgreSQL y AWS Cognito.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/postgres"
)

var _ ports.IdentityProvider = (*LocalProvider)(nil)

// PrincipalStore persistencia de credenciales locales. Implementado por postgres.PrincipalStore.
type PrincipalStore interface {
	Create(ctx context.Context, p *entity.Principal, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*postgres.PrincipalRecord, error)
	Delete(ctx context.Context, id string) error
}

// LocalProvider identidad local con contraseñas bcrypt.
type LocalProvider struct {
	store PrincipalStore
	cost  int
	now   func() time.Time
}

// NewLocalProvider construye el proveedor con el costo bcrypt por defecto.
func NewLocalProvider(store PrincipalStore) *LocalProvider {
	return &LocalProvider{store: store, cost: bcrypt.DefaultCost, now: time.Now}
}

// WithCost ajusta el costo bcrypt (tests usan bcrypt.MinCost).
func (p *LocalProvider) WithCost(cost int) *LocalProvider {
	p.cost = cost
	return p
}

// SignIn compara la contraseña con el hash guardado.
// Email desconocido y contraseña incorrecta devuelven el mismo error.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*entity.Principal, error) {
	rec, err := p.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	principal := rec.Principal
	return &principal, nil
}

// CreatePrincipal hashea la contraseña y persiste el principal.
func (p *LocalProvider) CreatePrincipal(ctx context.Context, in entity.NewPrincipal) (*entity.Principal, error) {
	if in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.cost)
	if err != nil {
		return nil, err
	}
	principal := &entity.Principal{
		ID:             uuid.New().String(),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		EmailConfirmed: in.EmailConfirmed,
		Metadata:       in.Metadata,
		CreatedAt:      p.now(),
	}
	if err := p.store.Create(ctx, principal, string(hash)); err != nil {
		return nil, err
	}
	return principal, nil
}

// DeletePrincipal elimina las credenciales.
func (p *LocalProvider) DeletePrincipal(ctx context.Context, principal *entity.Principal) error {
	if principal == nil {
		return nil
	}
	return p.store.Delete(ctx, principal.ID)
}
