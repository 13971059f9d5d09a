package entity

import "time"

// Tipos de movimiento de inventario. Los valores coinciden con la columna
// `type` de inventory_movements.
const (
	MovementTypeEntrada = "entrada" // ingreso de mercancía
	MovementTypeSalida  = "salida"  // venta o retiro
	MovementTypeAjuste  = "ajuste"  // reconciliación con conteo físico
)

// ValidMovementType indica si s es un tipo de movimiento conocido.
func ValidMovementType(s string) bool {
	return s == MovementTypeEntrada || s == MovementTypeSalida || s == MovementTypeAjuste
}

// InventoryMovement es un registro del ledger de stock: inmutable una vez
// creado (append-only). Quantity es SIEMPRE la magnitud sin signo; el signo
// del efecto lo da Type (entrada suma, salida resta; ajuste suma o resta
// según Effect del ledger). La suma de efectos reproducida desde cero debe
// igualar Product.Quantity en todo momento.
type InventoryMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    int    // magnitud, siempre > 0
	Increases   bool   // true si el movimiento sumó stock (relevante para ajuste)
	Description string // justificación, mínimo 5 caracteres
	UserID      string // obligatorio: no hay movimientos anónimos
	CreatedAt   time.Time
}

// SignedEffect devuelve el efecto con signo de este movimiento sobre el stock.
func (m *InventoryMovement) SignedEffect() int {
	if m.Increases {
		return m.Quantity
	}
	return -m.Quantity
}
