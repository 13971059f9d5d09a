package repository

import (
	"time"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
)

// InventoryMovementRepository puerto de persistencia del ledger de stock.
// No expone Update ni Delete: los movimientos son inmutables.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	List(limit, offset int) ([]*entity.InventoryMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
