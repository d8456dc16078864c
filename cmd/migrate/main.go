// Herramienta de migraciones de la base de datos.
//
// Uso:
//
//	migrate [-path migrations] <up|down|version|force <v>>
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/tienda-pos-api/pkg/config"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "migrations", "directorio de migraciones")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "uso: migrate [-path dir] <up|down|version|force <v>>")
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	// golang-migrate elige el driver por el esquema de la URL; pgx/v5 usa pgx5://
	dsn := cfg.DB.ConnectionString()
	dsn = strings.Replace(dsn, "postgresql://", "pgx5://", 1)
	dsn = strings.Replace(dsn, "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatal().Err(err).Msg("revertir última migración")
		}
		log.Info().Msg("última migración revertida")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info().Msg("sin migraciones aplicadas")
				return
			}
			log.Fatal().Err(err).Msg("consultar versión")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual")
	case "force":
		if len(args) < 2 {
			log.Fatal().Msg("uso: migrate force <version>")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Str("valor", args[1]).Msg("versión inválida")
		}
		if err := m.Force(v); err != nil {
			log.Fatal().Err(err).Msg("forzar versión")
		}
		log.Info().Int("version", v).Msg("versión forzada")
	default:
		log.Fatal().Str("comando", command).Msg("comando desconocido")
	}
}
