package ports

import "context"

// Nombres de colección publicados en el feed de cambios.
const (
	CollectionProducts  = "products"
	CollectionPurchases = "purchases"
	CollectionSales     = "sales"
)

// ChangeFeed notifica cambios por colección a los observadores registrados.
// El suscriptor recibe un tick por cambio y vuelve a leer el snapshot
// completo desde su repositorio.
//
// Subscribe devuelve el canal de ticks y una función de cancelación
// determinista e idempotente (llamarla dos veces es seguro; no quedan
// listeners colgados).
type ChangeFeed interface {
	Publish(ctx context.Context, collection string)
	Subscribe(ctx context.Context, collection string) (<-chan struct{}, func())
}
