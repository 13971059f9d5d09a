package sales

import (
	"context"

	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// SaleTxRunner abre una transacción con los repositorios que participan en un
// checkout: movimientos, productos y ventas. La cabecera, las líneas y los
// descuentos de stock hacen commit juntos o ninguno.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
