package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para entrada/salida Quantity es un delta; para ajuste es el stock objetivo.
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid4"`
	Type        string `json:"type" validate:"required,oneof=entrada salida ajuste"`
	Quantity    int    `json:"quantity" validate:"min=0"`
	Description string `json:"description" validate:"required"`
}

// MovementResponse movimiento del ledger en respuestas.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Increases   bool      `json:"increases"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
