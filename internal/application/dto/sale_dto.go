package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemDTO línea de venta (snapshot del producto + cantidad).
type SaleItemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Quantity  int64           `json:"quantity"`
}

// SaleResponse salida de una venta confirmada.
type SaleResponse struct {
	ID        string          `json:"id"`
	Items     []SaleItemDTO   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// SaleListResponse lista de ventas recientes.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}

// UpdateSaleRequest reemplaza las líneas de una venta. Las cantidades en cero
// se descartan; el total se recalcula siempre en el servidor.
type UpdateSaleRequest struct {
	Items []SaleItemDTO `json:"items" validate:"required,min=1"`
}

// CartItemRequest entrada para agregar un producto al carrito.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// CartResponse estado actual de un carrito en composición.
type CartResponse struct {
	ID        string          `json:"id"`
	Items     []SaleItemDTO   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int64           `json:"item_count"`
}
