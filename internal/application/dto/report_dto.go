package dto

import "github.com/shopspring/decimal"

// CategoryTotalDTO acumulado de una categoría dentro de la ventana del reporte.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// ReportSummaryDTO resumen financiero de la ventana (día o mes en curso).
type ReportSummaryDTO struct {
	Period         string             `json:"period"` // daily | monthly
	WindowStart    string             `json:"window_start"`
	TotalSales     decimal.Decimal    `json:"total_sales"`
	TotalPurchases decimal.Decimal    `json:"total_purchases"`
	NetUtility     decimal.Decimal    `json:"net_utility"`
	SaleCount      int                `json:"sale_count"`
	TopCategories  []CategoryTotalDTO `json:"top_categories"`
}
