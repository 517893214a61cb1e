package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/testutil/fakes"
)

func newUserUseCase(users *fakes.Users, identity *fakes.Identity, mailer *fakes.Mailer) *usecase.UserUseCase {
	return usecase.NewUserUseCase(users, identity, mailer, emails.NewComposer("https://app.lancei.com.br"), true).
		WithPasswordGenerator(func() (string, error) { return "Welc0me9", nil })
}

func TestUserUseCase_CreateInternal(t *testing.T) {
	users, identity, mailer := fakes.NewUsers(), fakes.NewIdentity(), &fakes.Mailer{}
	uc := newUserUseCase(users, identity, mailer)

	out, err := uc.CreateInternal(context.Background(), dto.CreateInternalUserRequest{
		Name:     "Ana Lima",
		Email:    "Ana@Lancei.com.br",
		Function: entity.FunctionOperator,
	})

	require.NoError(t, err)
	assert.True(t, out.EmailSent)
	assert.Equal(t, "ana@lancei.com.br", out.User.Email)
	assert.Equal(t, entity.ClassificationInternal, out.User.Classification)
	require.NotNil(t, out.User.Function)
	assert.Equal(t, entity.FunctionOperator, *out.User.Function)
	assert.Nil(t, out.User.TenantID)
	assert.Equal(t, "Welc0me9", identity.Password("ana@lancei.com.br"))

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, emails.SubjectWelcome, sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Welc0me9")
}

func TestUserUseCase_CreateInternalDuplicateEmail(t *testing.T) {
	users := fakes.NewUsers(entity.User{ID: "u1", Email: "ana@lancei.com.br"})
	identity := fakes.NewIdentity()
	uc := newUserUseCase(users, identity, &fakes.Mailer{})

	_, err := uc.CreateInternal(context.Background(), dto.CreateInternalUserRequest{Name: "Ana", Email: "ana@lancei.com.br", Function: entity.FunctionAdmin})

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Zero(t, identity.Len())
}

func TestUserUseCase_CreateInternalUndoesPrincipalOnProfileFailure(t *testing.T) {
	users, identity := fakes.NewUsers(), fakes.NewIdentity()
	users.FailOn("Create", errors.New("db down"))
	mailer := &fakes.Mailer{}
	uc := newUserUseCase(users, identity, mailer)

	_, err := uc.CreateInternal(context.Background(), dto.CreateInternalUserRequest{Name: "Ana", Email: "ana@lancei.com.br", Function: entity.FunctionAdmin})

	require.Error(t, err)
	assert.Zero(t, identity.Len())
	assert.Empty(t, mailer.Sent())
}

func TestUserUseCase_CreateInternalEmailFailure(t *testing.T) {
	users, identity, mailer := fakes.NewUsers(), fakes.NewIdentity(), &fakes.Mailer{}
	mailer.FailOn("Send", errors.New("smtp down"))
	uc := newUserUseCase(users, identity, mailer)

	out, err := uc.CreateInternal(context.Background(), dto.CreateInternalUserRequest{Name: "Ana", Email: "ana@lancei.com.br", Function: entity.FunctionAdmin})

	require.NoError(t, err)
	assert.False(t, out.EmailSent)
	assert.NotEmpty(t, out.EmailError)
	assert.Equal(t, 1, users.Len())
}

func TestUserUseCase_SetActive(t *testing.T) {
	users := fakes.NewUsers(
		entity.User{ID: "admin", Classification: entity.ClassificationInternal, Active: true},
		entity.User{ID: "op", Classification: entity.ClassificationInternal, Active: true},
	)
	uc := newUserUseCase(users, fakes.NewIdentity(), &fakes.Mailer{})

	out, err := uc.SetActive(context.Background(), "admin", "op", false)
	require.NoError(t, err)
	assert.False(t, out.Active)

	_, err = uc.SetActive(context.Background(), "admin", "admin", false)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.SetActive(context.Background(), "admin", "ghost", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_ListInternalOnly(t *testing.T) {
	users := fakes.NewUsers(
		entity.User{ID: "i1", Classification: entity.ClassificationInternal},
		entity.User{ID: "c1", Classification: entity.ClassificationCustomer},
	)
	uc := newUserUseCase(users, fakes.NewIdentity(), &fakes.Mailer{})

	out, err := uc.ListInternal(context.Background())

	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "i1", out.Items[0].ID)
}
