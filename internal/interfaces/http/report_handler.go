package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/reports"
)

// SummaryPDFGenerator puerto del generador de PDF del resumen financiero.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary *dto.ReportSummaryDTO) ([]byte, error)
}

// ReportHandler maneja los reportes financieros (protegido).
type ReportHandler struct {
	uc  *reports.ReportUseCase
	pdf SummaryPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase, pdf SummaryPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// GetSummary godoc
// @Summary      Resumen financiero de la ventana
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "daily | monthly"  default(daily)
// @Success      200  {object}  dto.ReportSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) GetSummary(c *fiber.Ctx) error {
	period, err := reports.ParsePeriod(c.Query("period"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser daily o monthly"})
	}
	out, err := h.uc.GetSummary(c.UserContext(), period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetSummaryPDF godoc
// @Summary      Resumen financiero en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  false  "daily | monthly"  default(daily)
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary/pdf [get]
func (h *ReportHandler) GetSummaryPDF(c *fiber.Ctx) error {
	period, err := reports.ParsePeriod(c.Query("period"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser daily o monthly"})
	}
	summary, err := h.uc.GetSummary(c.UserContext(), period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pdfBytes, err := h.pdf.GenerateSummaryPDF(c.UserContext(), summary)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}

	filename := fmt.Sprintf("reporte-%s-%s.pdf", period, time.Now().Format("20060102"))
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
