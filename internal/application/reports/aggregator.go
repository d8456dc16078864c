// Package reports reduce ventas y compras de una ventana de tiempo a las
// cifras del reporte: totales, utilidad neta y acumulados por categoría.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// Period ventana del reporte.
type Period string

// Ventanas soportadas.
const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
)

const topCategoriesLimit = 5

// WindowStart devuelve el inicio de la ventana para un periodo dado:
// daily -> medianoche del día de now; monthly -> día 1 del mes a las 00:00.
// Ambas colecciones se filtran con timestamp >= WindowStart antes de agregar.
func WindowStart(period Period, now time.Time) time.Time {
	if period == PeriodMonthly {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// CategoryTotal acumulado de una categoría: suma de precio × cantidad y
// cantidad de unidades.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int64
}

// Summary cifras agregadas de la ventana.
type Summary struct {
	TotalSales     decimal.Decimal
	TotalPurchases decimal.Decimal
	NetUtility     decimal.Decimal // puede ser negativa
	SaleCount      int
	// TopCategories: categorías ordenadas descendente por Total, máximo 5.
	// Empates conservan el orden de primera aparición (orden estable, sin
	// clave secundaria).
	TopCategories []CategoryTotal
}

// Summarize reduce las colecciones ya filtradas por ventana. Función pura:
// aritmética decimal exacta, sin redondeo, sin efectos.
//
// La acumulación por categoría es conmutativa: permutar la lista de ventas
// no cambia los acumulados.
func Summarize(sales []*entity.SaleRecord, purchases []*entity.PurchaseEntry) Summary {
	totalSales := decimal.Zero
	for _, s := range sales {
		totalSales = totalSales.Add(s.Total)
	}
	totalPurchases := decimal.Zero
	for _, p := range purchases {
		totalPurchases = totalPurchases.Add(p.TotalCost)
	}

	// Acumular por categoría conservando el orden de primera aparición,
	// para que el desempate del sort estable sea determinista.
	totals := make(map[string]*CategoryTotal)
	var order []string
	for _, s := range sales {
		for _, it := range s.Items {
			ct, ok := totals[it.Category]
			if !ok {
				ct = &CategoryTotal{Category: it.Category, Total: decimal.Zero}
				totals[it.Category] = ct
				order = append(order, it.Category)
			}
			ct.Total = ct.Total.Add(it.Subtotal())
			ct.Count += it.Quantity
		}
	}

	top := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		top = append(top, *totals[cat])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Total.GreaterThan(top[j].Total)
	})
	if len(top) > topCategoriesLimit {
		top = top[:topCategoriesLimit]
	}

	return Summary{
		TotalSales:     totalSales,
		TotalPurchases: totalPurchases,
		NetUtility:     totalSales.Sub(totalPurchases),
		SaleCount:      len(sales),
		TopCategories:  top,
	}
}
