package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Los totales se guardan en ambas monedas con la
// tasa vigente al momento de la venta.
type Sale struct {
	ID       string
	Date     time.Time
	TotalBs  decimal.Decimal
	TotalUSD decimal.Decimal
	UserID   string
	Items    []*SaleItem
}

// SaleItem línea de venta. ProductName y los precios se congelan al momento
// de la venta para que el histórico sobreviva a cambios del catálogo.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	ProductName string
	Quantity   int
	PriceBs    decimal.Decimal // precio unitario Bs al momento
	PriceUSD   decimal.Decimal // precio unitario USD al momento
}
