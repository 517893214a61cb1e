// seed_admin crea el primer super administrador interno (principal + fila en usuarios).
//
// Uso: go run ./cmd/seed_admin --email=ops@lancei.com.br --nome="Equipe Lancei" [--senha=...]
// Sin --senha se genera una contraseña temporal y se imprime una sola vez.
// Si ya existe un usuario con ese email no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/lancei-admin/internal/application/access"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/identity"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/lancei-admin/pkg/config"
	"github.com/jhoicas/lancei-admin/pkg/logger"
)

func main() {
	email := pflag.String("email", "", "email del administrador")
	name := pflag.String("nome", "Administrador Lancei", "nombre del administrador")
	password := pflag.String("senha", "", "contraseña inicial (vacío = generada)")
	pflag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "uso: seed_admin --email=<email> [--nome=<nome>] [--senha=<senha>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_admin"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	addr := strings.ToLower(strings.TrimSpace(*email))
	existing, err := postgres.NewUserRepository(pool).GetByEmail(ctx, addr)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if existing != nil {
		log.Info().Str("email", addr).Str("id", existing.ID).Msg("el usuario ya existe, nada que hacer")
		return
	}

	secret := *password
	generated := secret == ""
	if generated {
		if secret, err = access.TemporaryPassword(); err != nil {
			log.Fatal().Err(err).Msg("generar contraseña")
		}
	}

	fn := entity.FunctionSuperAdmin
	now := time.Now()
	user := &entity.User{
		Name:           strings.TrimSpace(*name),
		Email:          addr,
		Classification: entity.ClassificationInternal,
		Function:       &fn,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	newPrincipal := entity.NewPrincipal{
		Email:          addr,
		Password:       secret,
		EmailConfirmed: true,
		Metadata:       entity.PrincipalMetadata{Name: user.Name, Classification: entity.ClassificationInternal},
	}

	txRunner := postgres.NewTxRunner(pool)
	if cfg.Identity.Provider == "cognito" {
		err = seedCognito(ctx, cfg, txRunner, newPrincipal, user)
	} else {
		// Proveedor local: principal y usuario en la misma transacción.
		err = txRunner.Run(ctx, func(q postgres.Querier) error {
			p, err := identity.NewLocalProvider(postgres.NewPrincipalStore(q)).CreatePrincipal(ctx, newPrincipal)
			if err != nil {
				return err
			}
			user.ID = p.ID
			return postgres.NewUserRepository(q).Create(ctx, user)
		})
	}
	if err != nil {
		log.Fatal().Err(err).Str("email", addr).Msg("crear administrador")
	}

	log.Info().Str("email", addr).Str("id", user.ID).Msg("super administrador creado")
	if generated {
		fmt.Printf("Senha temporária de %s: %s\n", addr, secret)
	}
}

// seedCognito crea el principal en el user pool y luego la fila de usuarios.
// Si la fila falla, borra el principal.
func seedCognito(ctx context.Context, cfg *config.Config, tx *postgres.TxRunner, in entity.NewPrincipal, user *entity.User) error {
	provider, err := identity.NewCognitoProvider(ctx, cfg.Identity)
	if err != nil {
		return err
	}
	p, err := provider.CreatePrincipal(ctx, in)
	if err != nil {
		return err
	}
	user.ID = p.ID
	err = tx.Run(ctx, func(q postgres.Querier) error {
		return postgres.NewUserRepository(q).Create(ctx, user)
	})
	if err != nil {
		if delErr := provider.DeletePrincipal(ctx, p); delErr != nil {
			return fmt.Errorf("%w (principal %s no eliminado: %v)", err, p.ID, delErr)
		}
		return err
	}
	return nil
}
