package inventory

import (
	"time"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el ledger.
type MovementQueryUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso con un repo atado al pool
// (no requiere transacción).
func NewMovementQueryUseCase(movRepo repository.InventoryMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// List movimientos más recientes primero.
func (uc *MovementQueryUseCase) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	return uc.movRepo.List(limit, offset)
}

// ListByProduct historial de un producto, opcionalmente acotado por fechas.
func (uc *MovementQueryUseCase) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}
