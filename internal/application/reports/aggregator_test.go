package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/reports"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func sale(total int64, items ...entity.SaleItem) *entity.SaleRecord {
	return &entity.SaleRecord{
		Items: items,
		Total: decimal.NewFromInt(total),
	}
}

func item(category string, price, qty int64) entity.SaleItem {
	return entity.SaleItem{
		ProductID: "p-" + category,
		Name:      category,
		Price:     decimal.NewFromInt(price),
		Category:  category,
		Quantity:  qty,
	}
}

func purchase(totalCost int64) *entity.PurchaseEntry {
	return &entity.PurchaseEntry{TotalCost: decimal.NewFromInt(totalCost)}
}

// ──────────────────────────────────────────────────────────────────────────────
// WindowStart
// ──────────────────────────────────────────────────────────────────────────────

func TestWindowStart_DiarioEsMedianoche(t *testing.T) {
	now := time.Date(2026, 8, 17, 15, 42, 7, 123, time.UTC)
	got := reports.WindowStart(reports.PeriodDaily, now)
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), got)
}

func TestWindowStart_MensualEsPrimerDia(t *testing.T) {
	now := time.Date(2026, 8, 17, 15, 42, 7, 123, time.UTC)
	got := reports.WindowStart(reports.PeriodMonthly, now)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestWindowStart_ConservaZonaHoraria(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	now := time.Date(2026, 2, 28, 23, 59, 0, 0, bogota)
	got := reports.WindowStart(reports.PeriodDaily, now)
	assert.Equal(t, bogota, got.Location(), "la ventana debe calcularse en la zona local de la tienda")
	assert.Equal(t, 28, got.Day())
}

// ──────────────────────────────────────────────────────────────────────────────
// Summarize
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_VentanaVacia(t *testing.T) {
	s := reports.Summarize(nil, nil)

	assert.True(t, s.TotalSales.IsZero())
	assert.True(t, s.TotalPurchases.IsZero())
	assert.True(t, s.NetUtility.IsZero())
	assert.Zero(t, s.SaleCount)
	assert.Empty(t, s.TopCategories)
}

func TestSummarize_TotalesYUtilidad(t *testing.T) {
	sales := []*entity.SaleRecord{sale(5000), sale(3000)}
	purchases := []*entity.PurchaseEntry{purchase(2500), purchase(1500)}

	s := reports.Summarize(sales, purchases)

	assert.True(t, s.TotalSales.Equal(decimal.NewFromInt(8000)))
	assert.True(t, s.TotalPurchases.Equal(decimal.NewFromInt(4000)))
	assert.True(t, s.NetUtility.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, 2, s.SaleCount)
}

// La utilidad neta puede ser negativa: se reporta tal cual, sin recorte a cero.
func TestSummarize_UtilidadNegativa(t *testing.T) {
	s := reports.Summarize(
		[]*entity.SaleRecord{sale(1000)},
		[]*entity.PurchaseEntry{purchase(9000)},
	)
	assert.True(t, s.NetUtility.Equal(decimal.NewFromInt(-8000)),
		"la utilidad negativa debe reportarse con signo")
}

func TestSummarize_AcumuladosPorCategoria(t *testing.T) {
	sales := []*entity.SaleRecord{
		sale(0, item(entity.CategoryBebida, 2500, 2), item(entity.CategorySal, 2000, 1)),
		sale(0, item(entity.CategoryBebida, 1500, 1)),
	}

	s := reports.Summarize(sales, nil)

	require.Len(t, s.TopCategories, 2)
	bebida := s.TopCategories[0]
	assert.Equal(t, entity.CategoryBebida, bebida.Category)
	assert.True(t, bebida.Total.Equal(decimal.NewFromInt(6500)), "2×2500 + 1×1500")
	assert.Equal(t, int64(3), bebida.Count)

	sal := s.TopCategories[1]
	assert.Equal(t, entity.CategorySal, sal.Category)
	assert.True(t, sal.Total.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, int64(1), sal.Count)
}

func TestSummarize_TopCategoriasMaximoCinco(t *testing.T) {
	categories := []string{"A", "B", "C", "D", "E", "F", "G"}
	var sales []*entity.SaleRecord
	for i, cat := range categories {
		sales = append(sales, sale(0, item(cat, int64(1000*(i+1)), 1)))
	}

	s := reports.Summarize(sales, nil)

	require.Len(t, s.TopCategories, 5, "el top se recorta a cinco categorías")
	assert.Equal(t, "G", s.TopCategories[0].Category, "la de mayor total va primero")
	assert.Equal(t, "C", s.TopCategories[4].Category)
}

// Empates en el total conservan el orden de primera aparición en las ventas.
func TestSummarize_EmpatesConservanOrdenDeAparicion(t *testing.T) {
	sales := []*entity.SaleRecord{
		sale(0, item("Mecato", 1000, 1)),
		sale(0, item("Dulces", 1000, 1)),
		sale(0, item("Bebida", 1000, 1)),
	}

	s := reports.Summarize(sales, nil)

	require.Len(t, s.TopCategories, 3)
	assert.Equal(t, "Mecato", s.TopCategories[0].Category)
	assert.Equal(t, "Dulces", s.TopCategories[1].Category)
	assert.Equal(t, "Bebida", s.TopCategories[2].Category)
}

// Permutar las ventas no cambia los acumulados (la suma es conmutativa).
func TestSummarize_AcumuladosConmutativos(t *testing.T) {
	a := sale(100, item(entity.CategoryBebida, 100, 1))
	b := sale(4500, item(entity.CategoryMecato, 1500, 3))
	c := sale(400, item(entity.CategoryDulces, 200, 2))

	s1 := reports.Summarize([]*entity.SaleRecord{a, b, c}, nil)
	s2 := reports.Summarize([]*entity.SaleRecord{c, a, b}, nil)

	assert.True(t, s1.TotalSales.Equal(s2.TotalSales))
	require.Equal(t, len(s1.TopCategories), len(s2.TopCategories))
	for i := range s1.TopCategories {
		assert.Equal(t, s1.TopCategories[i].Category, s2.TopCategories[i].Category)
		assert.True(t, s1.TopCategories[i].Total.Equal(s2.TopCategories[i].Total))
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := reports.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, reports.PeriodDaily, p, "periodo vacío usa daily")

	p, err = reports.ParsePeriod("monthly")
	require.NoError(t, err)
	assert.Equal(t, reports.PeriodMonthly, p)

	_, err = reports.ParsePeriod("weekly")
	assert.Error(t, err, "solo daily y monthly son válidos")
}
