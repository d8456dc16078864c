// Package pdf genera el reporte financiero imprimible de la tienda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda │ Periodo + inicio de ventana  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CIFRAS: Ventas / Compras / Utilidad neta / N° ventas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Unidades | Total vendido                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoReportGenerator genera el PDF del resumen financiero usando Maroto v2.
type MarotoReportGenerator struct {
	storeName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(storeName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{storeName: storeName}
}

// GenerateSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSummaryPDF(_ context.Context, summary *dto.ReportSummaryDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte financiero", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(figuresRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(categoryHeaderRow())
	for _, r := range categoryRows(summary.TopCategories) {
		m.AddRows(r)
	}
	if len(summary.TopCategories) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas en la ventana del reporte.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tienda (izq) y periodo + ventana (der).
func (g *MarotoReportGenerator) headerRow(summary *dto.ReportSummaryDTO) core.Row {
	periodo := "Reporte del día"
	if summary.Period == "monthly" {
		periodo = "Reporte del mes"
	}
	desde := summary.WindowStart
	if t, err := time.Parse(time.RFC3339, summary.WindowStart); err == nil {
		desde = t.Format("02/01/2006 15:04")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen financiero", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(periodo, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Desde: "+desde, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// figuresRow: las cuatro cifras de la ventana. La utilidad negativa va en rojo.
func figuresRow(summary *dto.ReportSummaryDTO) core.Row {
	utilityColor := colorPrimary
	if summary.NetUtility.IsNegative() {
		utilityColor = colorRed
	}
	figure := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorGray, Top: 2,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: c, Top: 8,
			}),
		)
	}
	return row.New(18).Add(
		figure("Ventas", "$"+formatMoney(summary.TotalSales.StringFixed(0)), colorPrimary),
		figure("Compras", "$"+formatMoney(summary.TotalPurchases.StringFixed(0)), colorPrimary),
		figure("Utilidad neta", "$"+formatMoney(summary.NetUtility.StringFixed(0)), utilityColor),
		figure("N° ventas", fmt.Sprintf("%d", summary.SaleCount), colorPrimary),
	)
}

// categoryHeaderRow: cabecera de la tabla de categorías más vendidas.
func categoryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 6, align.Left),
		h("Unidades", 3, align.Center),
		h("Total vendido", 3, align.Right),
	)
}

// categoryRows: una fila por categoría del top.
func categoryRows(top []dto.CategoryTotalDTO) []core.Row {
	result := make([]core.Row, 0, len(top))
	for _, ct := range top {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				ct.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				fmt.Sprintf("%d", ct.Count),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(ct.Total.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
