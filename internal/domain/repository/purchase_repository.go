package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para el libro de compras.
// Las entradas se editan en sitio; no hay borrado en los flujos de la tienda.
type PurchaseRepository interface {
	Create(ctx context.Context, entry *entity.PurchaseEntry) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseEntry, error)
	Update(ctx context.Context, entry *entity.PurchaseEntry) error
	// ListRecent devuelve las últimas entradas, más reciente primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.PurchaseEntry, error)
	// ListSince devuelve las entradas con timestamp >= since (ventana de reportes).
	ListSince(ctx context.Context, since time.Time) ([]*entity.PurchaseEntry, error)
}
