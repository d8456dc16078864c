package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-pos-api/internal/application/auth"
	"github.com/jhoicas/tienda-pos-api/internal/application/catalog"
	"github.com/jhoicas/tienda-pos-api/internal/application/inventory"
	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/application/reports"
	"github.com/jhoicas/tienda-pos-api/internal/application/sales"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/tienda-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/redisfeed"
	httpRouter "github.com/jhoicas/tienda-pos-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-pos-api/pkg/config"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

// stores agrupa los puertos de persistencia resueltos según el driver.
type stores struct {
	products   repository.ProductRepository
	purchases  repository.PurchaseRepository
	sales      repository.SaleRepository
	users      repository.UserRepository
	purchaseTx inventory.TxRunner
	saleTx     pos.TxRunner
}

// serverConfig configura el servidor HTTP. Sin WriteTimeout: los streams
// SSE de /api/events son respuestas de larga vida y un deadline de
// escritura del servidor las cortaría.
func serverConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:     appName,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var st stores
	switch cfg.Store.Driver {
	case "memory":
		s := memory.NewSeeded()
		st = stores{
			products:   s.Products(),
			purchases:  s.Purchases(),
			sales:      s.Sales(),
			users:      s.Users(),
			purchaseTx: s.PurchaseTx(),
			saleTx:     s.SaleTx(),
		}
		log.Info().Msg("store en memoria con catálogo inicial")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		st = stores{
			products:   postgres.NewProductRepository(pool),
			purchases:  postgres.NewPurchaseRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			users:      postgres.NewUserRepository(pool),
			purchaseTx: postgres.NewPurchaseTxRunner(pool),
			saleTx:     postgres.NewSaleTxRunner(pool),
		}
	}

	// Feed de cambios: Redis pub/sub si hay REDIS_ADDR, hub en proceso si no.
	var feed ports.ChangeFeed
	if cfg.Redis.Addr != "" {
		redisFeed := redisfeed.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisFeed.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisFeed.Close()
		feed = redisFeed
		log.Info().Str("addr", cfg.Redis.Addr).Msg("feed de cambios sobre Redis")
	} else {
		feed = memory.NewFeedHub()
		log.Info().Msg("feed de cambios en proceso")
	}

	productUC := catalog.NewProductUseCase(st.products, feed)
	purchaseUC := inventory.NewPurchaseUseCase(st.purchaseTx, st.purchases, st.products, feed)
	saleUC := sales.NewSaleUseCase(st.sales, feed)
	confirmUC := pos.NewConfirmSaleUseCase(st.saleTx, st.products, feed, cfg.Timeouts.Confirm)
	carts := pos.NewCartManager()
	reportUC := reports.NewReportUseCase(st.sales, st.purchases)
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(serverConfig(cfg.App.Name))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		PurchaseUC:  purchaseUC,
		SaleUC:      saleUC,
		ConfirmUC:   confirmUC,
		Carts:       carts,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		PDF:         pdfGenerator,
		Feed:        feed,
		JWTSecret:   cfg.JWT.Secret,
		ReadTimeout: cfg.Timeouts.Read,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
