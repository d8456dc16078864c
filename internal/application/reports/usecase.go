package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// ReportUseCase arma el resumen financiero de la ventana pedida.
// Las dos lecturas van en paralelo; la agregación es Summarize (pura).
type ReportUseCase struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(saleRepo repository.SaleRepository, purchaseRepo repository.PurchaseRepository) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, purchaseRepo: purchaseRepo}
}

// ParsePeriod valida el periodo pedido por el cliente.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodMonthly:
		return Period(s), nil
	case "":
		return PeriodDaily, nil
	}
	return "", domain.ErrInvalidInput
}

// GetSummary filtra ambos libros a timestamp >= WindowStart y agrega.
func (uc *ReportUseCase) GetSummary(ctx context.Context, period Period) (*dto.ReportSummaryDTO, error) {
	since := WindowStart(period, time.Now())

	type salesResult struct {
		sales []*entity.SaleRecord
		err   error
	}
	type purchasesResult struct {
		purchases []*entity.PurchaseEntry
		err       error
	}

	salesCh := make(chan salesResult, 1)
	purchasesCh := make(chan purchasesResult, 1)

	go func() {
		s, err := uc.saleRepo.ListSince(ctx, since)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		p, err := uc.purchaseRepo.ListSince(ctx, since)
		purchasesCh <- purchasesResult{p, err}
	}()

	sales := <-salesCh
	purchases := <-purchasesCh

	if sales.err != nil {
		return nil, fmt.Errorf("reporte: ventas de la ventana: %w", sales.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("reporte: compras de la ventana: %w", purchases.err)
	}

	summary := Summarize(sales.sales, purchases.purchases)

	top := make([]dto.CategoryTotalDTO, 0, len(summary.TopCategories))
	for _, ct := range summary.TopCategories {
		top = append(top, dto.CategoryTotalDTO{
			Category: ct.Category,
			Total:    ct.Total,
			Count:    ct.Count,
		})
	}

	return &dto.ReportSummaryDTO{
		Period:         string(period),
		WindowStart:    since.Format(time.RFC3339),
		TotalSales:     summary.TotalSales,
		TotalPurchases: summary.TotalPurchases,
		NetUtility:     summary.NetUtility,
		SaleCount:      summary.SaleCount,
		TopCategories:  top,
	}, nil
}
