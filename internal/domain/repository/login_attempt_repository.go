package repository

import (
	"time"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
)

// LoginAttemptRepository puerto de persistencia para intentos de login.
type LoginAttemptRepository interface {
	Create(attempt *entity.LoginAttempt) error
	// CountRecentFailures cuenta fallos para ese username O esa IP desde `since`.
	CountRecentFailures(username, ipAddress string, since time.Time) (int, error)
	// LastFailure devuelve el fallo más reciente para username o IP desde `since`,
	// o nil si no hay.
	LastFailure(username, ipAddress string, since time.Time) (*entity.LoginAttempt, error)
	// ClearFailures borra los fallos recientes de un username tras login exitoso.
	ClearFailures(username string, since time.Time) error
	// DeleteOlderThan limpieza administrativa de registros viejos.
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
