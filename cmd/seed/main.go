// Siembra el catálogo inicial y el usuario administrador en PostgreSQL.
// Es idempotente por nombre: si un producto ya existe no se duplica.
package main

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/seed"
	"github.com/jhoicas/tienda-pos-api/pkg/config"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	inserted := 0
	for _, p := range seed.Products() {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`, p.Name,
		).Scan(&exists)
		if err != nil {
			log.Fatal().Err(err).Str("producto", p.Name).Msg("verificar existencia")
		}
		if exists {
			continue
		}
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("producto", p.Name).Msg("insertar producto")
		}
		inserted++
	}
	log.Info().Int("insertados", inserted).Msg("catálogo sembrado")

	admin, err := seed.DefaultAdmin()
	if err != nil {
		log.Fatal().Err(err).Msg("preparar admin inicial")
	}
	existing, err := userRepo.FindByEmail(ctx, admin.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar admin existente")
	}
	if existing == nil {
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("insertar admin")
		}
		log.Info().Str("email", admin.Email).Msg("admin inicial creado")
	} else {
		log.Info().Str("email", admin.Email).Msg("admin ya existe, sin cambios")
	}
}
