package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta del checkout.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	PriceBs     decimal.Decimal `json:"price_bs"`
	PriceUSD    decimal.Decimal `json:"price_usd"`
}

// SaleResponse venta en respuestas.
type SaleResponse struct {
	ID       string             `json:"id"`
	Date     time.Time          `json:"date"`
	TotalBs  decimal.Decimal    `json:"total_bs"`
	TotalUSD decimal.Decimal    `json:"total_usd"`
	UserID   string             `json:"user_id"`
	Items    []SaleItemResponse `json:"items,omitempty"`
}

// SalesSummaryResponse resumen del listado de ventas.
type SalesSummaryResponse struct {
	TodayTotalUSD decimal.Decimal `json:"today_total_usd"`
	MonthTotalUSD decimal.Decimal `json:"month_total_usd"`
	MonthCount    int             `json:"month_count"`
}
