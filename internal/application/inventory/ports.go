package inventory

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la escritura del libro de
// compras y los ajustes de stock se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error) error
}
