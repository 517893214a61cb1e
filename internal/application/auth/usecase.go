// Package auth resuelve quién hace cada petición: login contra el proveedor de identidad,
// registro de la sesión y resolución del token en cada request.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
	"github.com/jhoicas/lancei-admin/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Session principal autenticado y su perfil. Se recalcula en cada petición.
type Session struct {
	PrincipalID    string
	SessionID      string
	Name           string
	Email          string
	Classification string
	Function       *string
	TenantID       *string
}

// IsInternal informa si la sesión pertenece al personal interno.
func (s *Session) IsInternal() bool { return s.Classification == entity.ClassificationInternal }

// Home ruta de inicio del área de la sesión.
func (s *Session) Home() string { return entity.HomeFor(s.Classification) }

// HasFunction informa si la función interna de la sesión está entre fns.
func (s *Session) HasFunction(fns ...string) bool {
	if s.Function == nil {
		return false
	}
	for _, f := range fns {
		if *s.Function == f {
			return true
		}
	}
	return false
}

// ToResponse datos de la sesión para el panel.
func (s *Session) ToResponse() dto.SessionResponse {
	return dto.SessionResponse{
		PrincipalID:    s.PrincipalID,
		Name:           s.Name,
		Email:          s.Email,
		Classification: s.Classification,
		Function:       s.Function,
		TenantID:       s.TenantID,
		Home:           s.Home(),
	}
}

// AuthUseCase casos de uso de autenticación: login, resolución de sesión y logout.
type AuthUseCase struct {
	identity ports.IdentityProvider
	sessions ports.SessionStore
	users    repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identity ports.IdentityProvider, sessions ports.SessionStore, users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{identity: identity, sessions: sessions, users: users, jwtCfg: jwtCfg, now: time.Now}
}

// TTL duración de la sesión (igual a la del token).
func (uc *AuthUseCase) TTL() time.Duration {
	return time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
}

// Login verifica credenciales, exige un perfil activo, registra la sesión y firma el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	principal, err := uc.identity.SignIn(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Warn().Str("principal_id", principal.ID).Msg("principal sem perfil em usuarios")
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}

	sessionID := uuid.New().String()
	if err := uc.sessions.Create(ctx, sessionID, principal.ID, uc.TTL()); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, principal.ID, sessionID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, err
	}
	session := sessionFor(user, sessionID)
	log.Info().Str("principal_id", principal.ID).Str("tipo", user.Classification).Msg("login")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: uc.now().Add(uc.TTL()),
		Session:   session.ToResponse(),
	}, nil
}

// Resolve valida el token, la sesión registrada y el perfil activo.
// Cualquier fallo devuelve domain.ErrUnauthorized (envuelto).
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	principalID, ok, err := uc.sessions.Lookup(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !ok || principalID != claims.Subject {
		return nil, fmt.Errorf("%w: sessão encerrada", domain.ErrUnauthorized)
	}
	user, err := uc.users.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, fmt.Errorf("%w: perfil inexistente ou inativo", domain.ErrUnauthorized)
	}
	return sessionFor(user, claims.SessionID), nil
}

// Logout elimina la sesión; el token deja de ser aceptado aunque no haya expirado.
func (uc *AuthUseCase) Logout(ctx context.Context, s *Session) error {
	if s == nil {
		return nil
	}
	return uc.sessions.Delete(ctx, s.SessionID)
}

func sessionFor(u *entity.User, sessionID string) *Session {
	return &Session{
		PrincipalID:    u.ID,
		SessionID:      sessionID,
		Name:           u.Name,
		Email:          u.Email,
		Classification: u.Classification,
		Function:       u.Function,
		TenantID:       u.TenantID,
	}
}
