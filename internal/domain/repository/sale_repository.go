package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para el libro de ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.SaleRecord) error
	GetByID(ctx context.Context, id string) (*entity.SaleRecord, error)
	Update(ctx context.Context, sale *entity.SaleRecord) error
	Delete(ctx context.Context, id string) error
	// ListRecent devuelve las últimas ventas, más reciente primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.SaleRecord, error)
	// ListSince devuelve las ventas con timestamp >= since (ventana de reportes).
	ListSince(ctx context.Context, since time.Time) ([]*entity.SaleRecord, error)
}
