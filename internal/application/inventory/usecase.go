package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// Longitud mínima de la justificación de un movimiento, tras recortar espacios.
const minDescriptionLen = 5

// StockLedgerUseCase es la única autoridad para mutar Product.Quantity.
// Cada cambio de stock queda emparejado con exactamente un movimiento del
// ledger, dentro de una transacción con bloqueo de fila (SELECT FOR UPDATE),
// y el stock nunca queda negativo.
type StockLedgerUseCase struct {
	txRunner TxRunner
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner}
}

// validateMovement aplica las precondiciones comunes. Falla ANTES de abrir
// transacción: una validación fallida no deja estado parcial.
func validateMovement(quantity int, description, userID string) error {
	if quantity <= 0 {
		return domain.NewValidationError("la cantidad debe ser mayor a 0")
	}
	if userID == "" {
		return domain.NewValidationError("el usuario es obligatorio para registrar movimientos")
	}
	if len(strings.TrimSpace(description)) < minDescriptionLen {
		return domain.NewValidationError("debe proporcionar una descripción detallada (mínimo %d caracteres)", minDescriptionLen)
	}
	return nil
}

// applyLocked muta el producto YA bloqueado y agrega el movimiento, dentro de
// la transacción del caller. increase define el signo del efecto; quantity es
// la magnitud sin signo que se persiste.
func applyLocked(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	movType string,
	increase bool,
	quantity int,
	description, userID string,
) (*entity.InventoryMovement, error) {
	var newQty int
	if increase {
		newQty = product.Quantity + quantity
	} else {
		if product.Quantity < quantity {
			return nil, &domain.InsufficientStockError{Available: product.Quantity, Requested: quantity}
		}
		newQty = product.Quantity - quantity
	}
	if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
		return nil, err
	}
	product.Quantity = newQty

	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Type:        movType,
		Quantity:    quantity,
		Increases:   increase,
		Description: strings.TrimSpace(description),
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// applyInTx bloquea la fila del producto y delega en applyLocked. Es la
// primitiva interna por la que pasan todas las operaciones del ledger.
func applyInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID, movType string,
	increase bool,
	quantity int,
	description, userID string,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return applyLocked(movRepo, productRepo, product, movType, increase, quantity, description, userID)
}

// apply valida y ejecuta un movimiento en su propia transacción.
func (uc *StockLedgerUseCase) apply(
	ctx context.Context,
	productID, movType string,
	increase bool,
	quantity int,
	description, userID string,
) (*entity.InventoryMovement, error) {
	if err := validateMovement(quantity, description, userID); err != nil {
		return nil, err
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		mov, err = applyInTx(movRepo, productRepo, productID, movType, increase, quantity, description, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AddStock suma quantity unidades al producto y registra un movimiento
// 'entrada' con la magnitud sin signo.
func (uc *StockLedgerUseCase) AddStock(ctx context.Context, productID string, quantity int, description, userID string) (*entity.InventoryMovement, error) {
	return uc.apply(ctx, productID, entity.MovementTypeEntrada, true, quantity, description, userID)
}

// RemoveStock resta quantity unidades. Falla con InsufficientStockError si el
// stock disponible no alcanza; en ese caso nada cambia.
func (uc *StockLedgerUseCase) RemoveStock(ctx context.Context, productID string, quantity int, description, userID string) (*entity.InventoryMovement, error) {
	return uc.apply(ctx, productID, entity.MovementTypeSalida, false, quantity, description, userID)
}

// SetStock lleva el stock al valor absoluto target registrando un 'ajuste'
// con la magnitud |target - actual|. El diff se calcula contra la fila YA
// bloqueada, así dos ajustes concurrentes no pueden partir del mismo valor.
// Si el diff es cero no se registra movimiento (idempotente) y devuelve nil.
func (uc *StockLedgerUseCase) SetStock(ctx context.Context, productID string, target int, description, userID string) (*entity.InventoryMovement, error) {
	if target < 0 {
		return nil, domain.NewValidationError("el stock objetivo no puede ser negativo")
	}
	if userID == "" {
		return nil, domain.NewValidationError("el usuario es obligatorio para registrar movimientos")
	}
	if len(strings.TrimSpace(description)) < minDescriptionLen {
		return nil, domain.NewValidationError("debe proporcionar una descripción detallada (mínimo %d caracteres)", minDescriptionLen)
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		diff := target - product.Quantity
		if diff == 0 {
			return nil // sin cambio, sin movimiento
		}
		increase := diff > 0
		if diff < 0 {
			diff = -diff
		}
		mov, err = applyLocked(movRepo, productRepo, product, entity.MovementTypeAjuste, increase, diff, description, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AddStockInTx ejecuta una entrada usando repositorios atados a la transacción
// del caller (alta de producto con stock inicial: fila y movimiento
// comprometen juntos).
func (uc *StockLedgerUseCase) AddStockInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int,
	description, userID string,
) (*entity.InventoryMovement, error) {
	if err := validateMovement(quantity, description, userID); err != nil {
		return nil, err
	}
	return applyInTx(movRepo, productRepo, productID, entity.MovementTypeEntrada, true, quantity, description, userID)
}

// RemoveStockInTx ejecuta una salida usando repositorios atados a la
// transacción del caller (checkout de venta: todas las líneas en una sola tx,
// si una falla por stock insuficiente se revierte la venta completa).
func (uc *StockLedgerUseCase) RemoveStockInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int,
	description, userID string,
) (*entity.InventoryMovement, error) {
	if err := validateMovement(quantity, description, userID); err != nil {
		return nil, err
	}
	return applyInTx(movRepo, productRepo, productID, entity.MovementTypeSalida, false, quantity, description, userID)
}

// RegisterMovement punto de entrada para el flujo de ajuste manual del
// operador: entrada y salida son deltas; ajuste fija el stock absoluto.
func (uc *StockLedgerUseCase) RegisterMovement(ctx context.Context, productID, movType string, quantity int, description, userID string) (*entity.InventoryMovement, error) {
	switch movType {
	case entity.MovementTypeEntrada:
		return uc.AddStock(ctx, productID, quantity, description, userID)
	case entity.MovementTypeSalida:
		return uc.RemoveStock(ctx, productID, quantity, description, userID)
	case entity.MovementTypeAjuste:
		return uc.SetStock(ctx, productID, quantity, description, userID)
	default:
		return nil, domain.NewValidationError("tipo de movimiento desconocido: %s", movType)
	}
}
