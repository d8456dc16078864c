package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos-api/internal/application/auth"
	"github.com/jhoicas/tienda-pos-api/internal/application/catalog"
	"github.com/jhoicas/tienda-pos-api/internal/application/inventory"
	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/application/reports"
	"github.com/jhoicas/tienda-pos-api/internal/application/sales"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *catalog.ProductUseCase
	PurchaseUC  *inventory.PurchaseUseCase
	SaleUC      *sales.SaleUseCase
	ConfirmUC   *pos.ConfirmSaleUseCase
	Carts       *pos.CartManager
	ReportUC    *reports.ReportUseCase
	AuthUC      *auth.AuthUseCase
	PDF         SummaryPDFGenerator
	Feed        ports.ChangeFeed
	JWTSecret   string
	ReadTimeout time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; alta de personal solo admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (lectura para todo el personal; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Libro de compras
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.ListRecent)
	purchases.Post("/", purchaseHandler.Register)
	purchases.Put("/:id", purchaseHandler.Update)

	// Punto de venta
	posGroup := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.Carts, deps.ConfirmUC)
	posGroup.Post("/carts", posHandler.CreateCart)
	posGroup.Get("/carts/:id", posHandler.GetCart)
	posGroup.Delete("/carts/:id", posHandler.DropCart)
	posGroup.Post("/carts/:id/items", posHandler.AddItem)
	posGroup.Delete("/carts/:id/items/:productId", posHandler.RemoveItem)
	posGroup.Post("/carts/:id/confirm", posHandler.Confirm)

	// Libro de ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Reportes
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF)
	reportsGroup.Get("/summary", reportHandler.GetSummary)
	reportsGroup.Get("/summary/pdf", reportHandler.GetSummaryPDF)

	// Streams SSE por colección
	events := protected.Group("/events")
	eventsHandler := NewEventsHandler(deps.Feed, snapshotLoaders(deps), deps.ReadTimeout)
	events.Get("/:collection", eventsHandler.Stream)
}

// snapshotLoaders arma el loader de snapshot por colección.
func snapshotLoaders(deps RouterDeps) map[string]SnapshotLoader {
	return map[string]SnapshotLoader{
		ports.CollectionProducts: func(ctx context.Context) (any, error) {
			return deps.ProductUC.List(ctx)
		},
		ports.CollectionPurchases: func(ctx context.Context) (any, error) {
			return deps.PurchaseUC.ListRecent(ctx)
		},
		ports.CollectionSales: func(ctx context.Context) (any, error) {
			return deps.SaleUC.ListRecent(ctx)
		},
	}
}
