package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseEntry representa una compra de insumos registrada en el libro de compras.
// TotalCost es derivado y debe cumplir TotalCost = Quantity × UnitCost en todo momento.
// Name es un snapshot desnormalizado del nombre del producto al momento de la compra.
type PurchaseEntry struct {
	ID        string
	ProductID string
	Name      string
	Date      string // fecha calendario YYYY-MM-DD
	Quantity  int64
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
	Timestamp time.Time // asignado por el store al crear
}

// ComputeTotal recalcula TotalCost a partir de Quantity y UnitCost.
func (p *PurchaseEntry) ComputeTotal() {
	p.TotalCost = p.UnitCost.Mul(decimal.NewFromInt(p.Quantity))
}
