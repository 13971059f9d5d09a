package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un repuesto del catálogo.
// Quantity es el stock actual y SOLO se modifica a través del ledger de
// inventario (StockLedgerUseCase); nunca directamente desde el catálogo.
// PriceUSD es el precio base; PriceBs se deriva con la tasa de cambio vigente.
type Product struct {
	ID            string
	Name          string
	Quantity      int // invariante: >= 0, garantizado por el ledger
	PriceBs       decimal.Decimal
	PriceUSD      decimal.Decimal
	CategoryID    *string
	PartNumber    string // número de parte del fabricante
	Manufacturer  string
	Brand         string
	VehicleType   string // 'Auto', 'Moto', 'Camión', ...
	Compatibility string // modelos compatibles, texto libre
	Location      string // ubicación física en el depósito
	MinStock      int    // umbral de alerta de stock bajo
	IsActive      bool   // baja lógica; nunca se borra físico si tiene movimientos
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
