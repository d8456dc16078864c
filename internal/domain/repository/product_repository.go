package repository

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// IncrementStock aplica un incremento relativo y atómico sobre el valor
// actual; es la única vía por la que la reconciliación toca el stock.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	IncrementStock(ctx context.Context, productID string, delta int64) error
}
