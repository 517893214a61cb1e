package identity

import (
	"context"
	"fmt"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/pkg/config"
)

// New elige el proveedor según IDENTITY_PROVIDER. store solo se usa con el proveedor local.
func New(ctx context.Context, cfg config.IdentityConfig, store PrincipalStore) (ports.IdentityProvider, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalProvider(store), nil
	case "cognito":
		return NewCognitoProvider(ctx, cfg)
	}
	return nil, fmt.Errorf("proveedor de identidad desconocido %q", cfg.Provider)
}
