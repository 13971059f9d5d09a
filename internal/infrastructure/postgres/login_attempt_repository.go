package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

var _ repository.LoginAttemptRepository = (*LoginAttemptRepo)(nil)

// LoginAttemptRepo implementación de LoginAttemptRepository sobre PostgreSQL.
type LoginAttemptRepo struct {
	q Querier
}

// NewLoginAttemptRepository construye el adaptador.
func NewLoginAttemptRepository(q Querier) *LoginAttemptRepo {
	return &LoginAttemptRepo{q: q}
}

// Create registra un intento de login.
func (r *LoginAttemptRepo) Create(attempt *entity.LoginAttempt) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO login_attempts (id, username, ip_address, success, user_agent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		attempt.ID, attempt.Username, attempt.IPAddress, attempt.Success, attempt.UserAgent, attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert login attempt: %w", err)
	}
	return nil
}

// CountRecentFailures fallos para ese username O esa IP desde `since`.
func (r *LoginAttemptRepo) CountRecentFailures(username, ipAddress string, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM login_attempts
		 WHERE (username = $1 OR ip_address = $2) AND NOT success AND created_at >= $3`,
		username, ipAddress, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count failures: %w", err)
	}
	return count, nil
}

// LastFailure el fallo más reciente para username o IP desde `since`.
func (r *LoginAttemptRepo) LastFailure(username, ipAddress string, since time.Time) (*entity.LoginAttempt, error) {
	var a entity.LoginAttempt
	err := r.q.QueryRow(context.Background(),
		`SELECT id, username, ip_address, success, user_agent, created_at FROM login_attempts
		 WHERE (username = $1 OR ip_address = $2) AND NOT success AND created_at >= $3
		 ORDER BY created_at DESC LIMIT 1`,
		username, ipAddress, since,
	).Scan(&a.ID, &a.Username, &a.IPAddress, &a.Success, &a.UserAgent, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last failure: %w", err)
	}
	return &a, nil
}

// ClearFailures borra los fallos recientes del username tras login exitoso.
func (r *LoginAttemptRepo) ClearFailures(username string, since time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM login_attempts WHERE username = $1 AND NOT success AND created_at >= $2`,
		username, since,
	)
	if err != nil {
		return fmt.Errorf("clear failures: %w", err)
	}
	return nil
}

// DeleteOlderThan limpieza administrativa; devuelve cuántos registros borró.
func (r *LoginAttemptRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM login_attempts WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup attempts: %w", err)
	}
	return cmd.RowsAffected(), nil
}
