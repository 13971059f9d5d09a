package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// UpdateQuantity y GetForUpdate son de uso exclusivo del ledger de stock,
// dentro de una transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity escribe el stock resultante de un movimiento del ledger.
	UpdateQuantity(productID string, quantity int) error
	// RecalcPricesBs recalcula price_bs = price_usd * rate para todo el catálogo.
	RecalcPricesBs(rate decimal.Decimal) error
	List(onlyActive bool) ([]*entity.Product, error)
	// Search busca por nombre, número de parte, fabricante o compatibilidad.
	Search(query string) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	// Deactivate baja lógica (is_active = false).
	Deactivate(id string) error
}
