package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
)

// DailySalesTotal total de ventas (USD) y cantidad de ventas de un día calendario.
type DailySalesTotal struct {
	Day   time.Time
	Total decimal.Decimal
	Count int
}

// NoRotationProduct producto activo sin movimientos desde la fecha de corte.
type NoRotationProduct struct {
	Product          *entity.Product
	LastMovementDate *time.Time // nil si nunca tuvo movimientos
}

// AnalyticsRepository consultas agregadas para dashboard y reportes.
type AnalyticsRepository interface {
	// SalesTotalsByDay totales diarios de ventas (USD) entre from y to, inclusive.
	SalesTotalsByDay(from, to time.Time) ([]DailySalesTotal, error)
	// NoRotationProducts productos activos sin movimientos desde cutoff.
	NoRotationProducts(cutoff time.Time) ([]NoRotationProduct, error)
	CountNoRotation(cutoff time.Time) (int, error)
}
