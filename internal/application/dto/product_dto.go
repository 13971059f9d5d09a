package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. El stock inicial se
// registra como movimiento 'entrada' vía el ledger, nunca escribiendo
// quantity directo.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	InitialStock  int             `json:"initial_stock" validate:"min=0"`
	PriceUSD      decimal.Decimal `json:"price_usd"`
	CategoryID    *string         `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	PartNumber    string          `json:"part_number,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	VehicleType   string          `json:"vehicle_type,omitempty"`
	Compatibility string          `json:"compatibility,omitempty"`
	Location      string          `json:"location,omitempty"`
	MinStock      int             `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye quantity:
// el stock solo cambia por movimientos.
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	PriceUSD      decimal.Decimal `json:"price_usd"`
	CategoryID    *string         `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	PartNumber    string          `json:"part_number,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	VehicleType   string          `json:"vehicle_type,omitempty"`
	Compatibility string          `json:"compatibility,omitempty"`
	Location      string          `json:"location,omitempty"`
	MinStock      int             `json:"min_stock" validate:"min=0"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	PriceBs       decimal.Decimal `json:"price_bs"`
	PriceUSD      decimal.Decimal `json:"price_usd"`
	CategoryID    *string         `json:"category_id,omitempty"`
	PartNumber    string          `json:"part_number,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	VehicleType   string          `json:"vehicle_type,omitempty"`
	Compatibility string          `json:"compatibility,omitempty"`
	Location      string          `json:"location,omitempty"`
	MinStock      int             `json:"min_stock"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
