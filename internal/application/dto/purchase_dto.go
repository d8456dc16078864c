package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPurchaseRequest entrada para registrar una compra de insumos.
type RegisterPurchaseRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Date      string          `json:"date"` // YYYY-MM-DD; vacío usa la fecha actual
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// UpdatePurchaseRequest entrada para editar una compra existente.
// Puede re-apuntar la entrada a otro producto; la reconciliación ajusta
// el stock de ambos productos.
type UpdatePurchaseRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Date      string          `json:"date"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseResponse salida de una entrada del libro de compras.
type PurchaseResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Timestamp time.Time       `json:"timestamp"`
}

// PurchaseListResponse lista de compras recientes.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
}
