package identity_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/identity"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/postgres"
)

type memPrincipals struct {
	mu   sync.Mutex
	rows map[string]postgres.PrincipalRecord
}

func newMemPrincipals() *memPrincipals {
	return &memPrincipals{rows: map[string]postgres.PrincipalRecord{}}
}

func (m *memPrincipals) Create(_ context.Context, p *entity.Principal, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.rows[p.Email] = postgres.PrincipalRecord{Principal: *p, PasswordHash: hash}
	return nil
}

func (m *memPrincipals) GetByEmail(_ context.Context, email string) (*postgres.PrincipalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[email]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memPrincipals) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, rec := range m.rows {
		if rec.Principal.ID == id {
			delete(m.rows, k)
		}
	}
	return nil
}

func TestLocalProvider_CreateAndSignIn(t *testing.T) {
	store := newMemPrincipals()
	p := identity.NewLocalProvider(store).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	created, err := p.CreatePrincipal(ctx, entity.NewPrincipal{
		Email: "Maria@Souza.com.br", Password: "Tmp-123456", EmailConfirmed: true,
		Metadata: entity.PrincipalMetadata{Name: "Maria", TenantID: "t1", Classification: entity.ClassificationCustomer},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "maria@souza.com.br", created.Email)
	assert.NotEqual(t, "Tmp-123456", store.rows["maria@souza.com.br"].PasswordHash)

	got, err := p.SignIn(ctx, " MARIA@souza.com.br", "Tmp-123456")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "t1", got.Metadata.TenantID)
}

func TestLocalProvider_SignInFailures(t *testing.T) {
	p := identity.NewLocalProvider(newMemPrincipals()).WithCost(bcrypt.MinCost)
	ctx := context.Background()
	_, err := p.CreatePrincipal(ctx, entity.NewPrincipal{Email: "a@x.com", Password: "right"})
	require.NoError(t, err)

	_, err = p.SignIn(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "ghost@x.com", "right")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLocalProvider_DuplicateAndDelete(t *testing.T) {
	p := identity.NewLocalProvider(newMemPrincipals()).WithCost(bcrypt.MinCost)
	ctx := context.Background()
	created, err := p.CreatePrincipal(ctx, entity.NewPrincipal{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = p.CreatePrincipal(ctx, entity.NewPrincipal{Email: "A@x.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.NoError(t, p.DeletePrincipal(ctx, created))
	_, err = p.SignIn(ctx, "a@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLocalProvider_EmptyPassword(t *testing.T) {
	p := identity.NewLocalProvider(newMemPrincipals())
	_, err := p.CreatePrincipal(context.Background(), entity.NewPrincipal{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
