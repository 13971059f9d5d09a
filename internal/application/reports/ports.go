package reports

import (
	"context"
	"time"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// PDFGenerator puerto de generación de reportes PDF.
type PDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, products []*entity.Product) ([]byte, error)
	GenerateSalesPDF(ctx context.Context, totals []repository.DailySalesTotal, from, to time.Time) ([]byte, error)
}
