package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoRotationProductDTO producto sin rotación en el período consultado.
type NoRotationProductDTO struct {
	ProductID        string     `json:"product_id"`
	Name             string     `json:"name"`
	Quantity         int        `json:"quantity"`
	LastMovementDate *time.Time `json:"last_movement_date,omitempty"`
}

// DashboardResponse resumen del dashboard.
type DashboardResponse struct {
	LowStockProducts []ProductResponse `json:"low_stock_products"`
	NoRotationCount  int               `json:"no_rotation_count"`
}

// ExchangeRateResponse tasa de cambio vigente.
type ExchangeRateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

// UpdateExchangeRateRequest body para PUT /api/settings/exchange-rate.
type UpdateExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}
