// migrate aplica las migraciones embebidas del esquema.
//
// Uso: go run ./cmd/migrate [up|down|goto N|status]
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/jhoicas/lancei-admin/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/lancei-admin/pkg/config"
	"github.com/jhoicas/lancei-admin/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	m, err := migrations.New(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer migrations.Close(m)

	switch command {
	case "up":
		err = m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			log.Info().Msg("sin cambios: la base de datos ya está al día")
		case err != nil:
			log.Fatal().Err(err).Msg("aplicar migraciones")
		default:
			log.Info().Msg("migraciones aplicadas")
		}

	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatal().Err(err).Msg("revertir la última migración")
		}
		log.Info().Msg("última migración revertida")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatal().Msg("indique el número de versión")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatal().Err(err).Msg("versión inválida")
		}
		err = m.Migrate(uint(version))
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			log.Info().Uint64("version", version).Msg("sin cambios: la base de datos ya está en esa versión")
		case err != nil:
			log.Fatal().Err(err).Uint64("version", version).Msg("migrar a la versión")
		default:
			log.Info().Uint64("version", version).Msg("migración completada")
		}

	case "status":
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			log.Info().Msg("aún no se aplicó ninguna migración")
		case err != nil:
			log.Fatal().Err(err).Msg("leer versión")
		default:
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual")
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Uso: go run ./cmd/migrate [comando]")
	fmt.Println("Comandos:")
	fmt.Println("  up      - aplica todas las migraciones pendientes")
	fmt.Println("  down    - revierte la última migración")
	fmt.Println("  goto N  - migra a la versión N")
	fmt.Println("  status  - muestra la versión actual")
}
