package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem es una línea de venta: snapshot del producto más la cantidad vendida.
// Una línea con cantidad cero no se conserva; se elimina de la lista.
type SaleItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Category  string
	Quantity  int64
}

// Subtotal devuelve Price × Quantity de la línea.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// SaleRecord representa una venta confirmada.
// Total es derivado: suma de Price × Quantity sobre todas las líneas.
type SaleRecord struct {
	ID        string
	Items     []SaleItem
	Total     decimal.Decimal
	Timestamp time.Time // asignado por el store al crear
}

// ComputeTotal recalcula Total a partir de las líneas.
func (s *SaleRecord) ComputeTotal() {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	s.Total = total
}
