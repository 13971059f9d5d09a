package repository

import (
	"time"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	CreateHeader(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// UpdateTotals escribe los totales finales de la cabecera.
	UpdateTotals(sale *entity.Sale) error
	// GetByID devuelve la venta con sus items.
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	ListSince(since time.Time) ([]*entity.Sale, error)
}
