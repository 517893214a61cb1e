package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/application/workflow"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// UserUseCase gestión del personal interno.
type UserUseCase struct {
	repo       repository.UserRepository
	identity   ports.IdentityProvider
	mailer     ports.Mailer
	composer   *emails.Composer
	compensate bool
	password   access.PasswordGenerator
	now        func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(
	repo repository.UserRepository,
	identity ports.IdentityProvider,
	mailer ports.Mailer,
	composer *emails.Composer,
	compensate bool,
) *UserUseCase {
	return &UserUseCase{
		repo:       repo,
		identity:   identity,
		mailer:     mailer,
		composer:   composer,
		compensate: compensate,
		password:   access.TemporaryPassword,
		now:        time.Now,
	}
}

// WithPasswordGenerator reemplaza el generador de contraseñas (tests).
func (uc *UserUseCase) WithPasswordGenerator(g access.PasswordGenerator) *UserUseCase {
	uc.password = g
	return uc
}

// ListInternal personal interno, más recientes primero.
func (uc *UserUseCase) ListInternal(ctx context.Context) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByClassification(ctx, entity.ClassificationInternal)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items}, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// CreateInternal da de alta un miembro del personal: principal con contraseña temporal,
// perfil interno y e-mail de bienvenida. El e-mail se envía después de confirmar el alta.
func (uc *UserUseCase) CreateInternal(ctx context.Context, in dto.CreateInternalUserRequest) (*dto.CreateInternalUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if !entity.IsValidFunction(in.Function) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := uc.now()
	var (
		password  string
		principal *entity.Principal
		user      *entity.User
	)
	saga := workflow.New("cadastro_usuario_interno", uc.compensate).
		Step("senha_temporaria", func(context.Context) error {
			p, err := uc.password()
			password = p
			return err
		}, nil).
		Step("principal", func(ctx context.Context) error {
			p, err := uc.identity.CreatePrincipal(ctx, entity.NewPrincipal{
				Email:          email,
				Password:       password,
				EmailConfirmed: true,
				Metadata:       entity.PrincipalMetadata{Name: name, Classification: entity.ClassificationInternal},
			})
			principal = p
			return err
		}, func(ctx context.Context) error {
			return uc.identity.DeletePrincipal(ctx, principal)
		}).
		Step("usuario", func(ctx context.Context) error {
			function := in.Function
			user = &entity.User{
				ID:             principal.ID,
				Name:           name,
				Email:          email,
				Classification: entity.ClassificationInternal,
				Function:       &function,
				Active:         true,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			return uc.repo.Create(ctx, user)
		}, nil)
	if err := saga.Execute(ctx); err != nil {
		return nil, err
	}

	out := &dto.CreateInternalUserResponse{User: *entityToUserResponse(user)}
	msg, err := uc.composer.Welcome(name, email, password)
	if err == nil {
		err = uc.mailer.Send(ctx, msg)
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("e-mail de boas-vindas não enviado")
		out.EmailError = "não foi possível enviar o e-mail com a senha temporária"
	} else {
		out.EmailSent = true
	}
	log.Info().Str("user_id", user.ID).Str("funcao", in.Function).Msg("usuário interno criado")
	return out, nil
}

// SetActive activa o desactiva un usuario. Nadie puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, id string, active bool) (*dto.UserResponse, error) {
	if actorID == id && !active {
		return nil, domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetActive(ctx, id, active, uc.now()); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Classification: u.Classification,
		Function:       u.Function,
		TenantID:       u.TenantID,
		Active:         u.Active,
		CreatedAt:      u.CreatedAt,
	}
}
