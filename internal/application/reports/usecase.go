package reports

import (
	"context"
	"time"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// Período por defecto del reporte de ventas.
const salesReportDays = 7

// ReportUseCase reportes administrativos: PDF de inventario, PDF de ventas
// semanales y listado de productos sin rotación.
type ReportUseCase struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	pdf           PDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, analyticsRepo repository.AnalyticsRepository, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, analyticsRepo: analyticsRepo, pdf: pdf}
}

// InventoryPDF genera el reporte de inventario de todo el catálogo
// (incluye inactivos: el reporte es valuación total).
func (uc *ReportUseCase) InventoryPDF(ctx context.Context) ([]byte, error) {
	products, err := uc.productRepo.List(false)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInventoryPDF(ctx, products)
}

// SalesPDF genera el reporte de ventas de los últimos 7 días, con totales
// diarios en USD.
func (uc *ReportUseCase) SalesPDF(ctx context.Context) ([]byte, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -salesReportDays)
	totals, err := uc.analyticsRepo.SalesTotalsByDay(from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesPDF(ctx, totals, from, to)
}

// NoRotation lista productos activos sin movimientos en los últimos `days`
// días (60 por defecto), con la fecha del último movimiento si existe.
func (uc *ReportUseCase) NoRotation(days int) ([]dto.NoRotationProductDTO, error) {
	if days <= 0 {
		days = 60
	}
	if days > 3650 {
		return nil, domain.NewValidationError("el período máximo es de 3650 días")
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	rows, err := uc.analyticsRepo.NoRotationProducts(cutoff)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoRotationProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NoRotationProductDTO{
			ProductID:        r.Product.ID,
			Name:             r.Product.Name,
			Quantity:         r.Product.Quantity,
			LastMovementDate: r.LastMovementDate,
		})
	}
	return out, nil
}
