package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está en uso")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrTooManyAttempts   = errors.New("demasiados intentos de inicio de sesión")
)

// ValidationError precondición de entrada violada. Envuelve ErrInvalidInput
// para que errors.Is(err, ErrInvalidInput) funcione en los handlers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un error de validación con mensaje legible.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError una salida/ajuste dejaría el stock negativo.
// Lleva disponible y solicitado para que el caller los muestre.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// LockoutError cuenta o IP bloqueada por intentos fallidos. RetryAfterSeconds
// indica cuántos segundos faltan para el desbloqueo.
type LockoutError struct {
	RetryAfterSeconds int
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("demasiados intentos fallidos, intente de nuevo en %d segundos", e.RetryAfterSeconds)
}

func (e *LockoutError) Unwrap() error { return ErrTooManyAttempts }
