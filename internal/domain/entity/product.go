package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/domain"
)

// Categorías válidas para Product (catálogo de la tienda).
const (
	CategoryBebida = "Bebida"
	CategoryMecato = "Mecato"
	CategoryDulces = "Dulces"
	CategorySal    = "Sal"
	CategoryUtiles = "Útiles"
)

// Categories en el orden en que la tienda las muestra.
var Categories = []string{CategoryBebida, CategoryMecato, CategoryDulces, CategorySal, CategoryUtiles}

// ParseCategory valida una categoría leída del store o de un request.
// Los documentos llegan con tipado débil; toda lectura pasa por aquí.
func ParseCategory(s string) (string, error) {
	for _, c := range Categories {
		if s == c {
			return c, nil
		}
	}
	return "", domain.ErrInvalidCategory
}

// IconForCategory deriva el ícono mostrado en la UI a partir de la categoría.
func IconForCategory(category string) string {
	switch category {
	case CategoryBebida:
		return "CupSoda"
	case CategoryDulces:
		return "IceCream"
	default:
		return "Utensils"
	}
}

// Product representa un producto vendible del catálogo.
// Stock se mantiene consistente con los libros de compras y ventas mediante
// incrementos relativos; nunca se escribe un valor absoluto desde los casos
// de uso de reconciliación.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // COP, pesos enteros
	Category  string          // Bebida, Mecato, Dulces, Sal, Útiles
	Icon      string          // derivado de la categoría
	Stock     int64           // sin stock en el documento -> 0
	ImageURL  string          // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate verifica los invariantes del producto antes de persistir.
func (p *Product) Validate() error {
	if p.Name == "" {
		return domain.ErrInvalidInput
	}
	if !p.Price.IsPositive() {
		return domain.ErrInvalidInput
	}
	if _, err := ParseCategory(p.Category); err != nil {
		return err
	}
	return nil
}
