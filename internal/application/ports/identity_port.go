package ports

import (
	"context"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// IdentityProvider puerto de salida hacia el servicio de autenticación.
// Implementaciones: principals locales en PostgreSQL (bcrypt) y AWS Cognito.
type IdentityProvider interface {
	// SignIn verifica las credenciales. Devuelve domain.ErrInvalidCredentials si no coinciden.
	SignIn(ctx context.Context, email, password string) (*entity.Principal, error)
	// CreatePrincipal crea una identidad con contraseña ya definida.
	// Devuelve domain.ErrEmailAlreadyExists si el email ya tiene identidad.
	CreatePrincipal(ctx context.Context, in entity.NewPrincipal) (*entity.Principal, error)
	// DeletePrincipal elimina la identidad (compensación de aprovisionamientos fallidos).
	DeletePrincipal(ctx context.Context, principal *entity.Principal) error
}

// SessionStore registro de sesiones emitidas. Cerrar sesión borra el registro y el token deja de valer.
type SessionStore interface {
	Create(ctx context.Context, sessionID, principalID string, ttl time.Duration) error
	// Lookup devuelve el principal de la sesión; ok=false si no existe o expiró.
	Lookup(ctx context.Context, sessionID string) (principalID string, ok bool, err error)
	Delete(ctx context.Context, sessionID string) error
}
