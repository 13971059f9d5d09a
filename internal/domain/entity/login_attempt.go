package entity

import "time"

// LoginAttempt registro de intento de inicio de sesión, exitoso o no.
// Username no es FK: también se registran intentos contra usuarios
// inexistentes.
type LoginAttempt struct {
	ID        string
	Username  string
	IPAddress string // hasta 45 chars (IPv6)
	Success   bool
	UserAgent string
	CreatedAt time.Time
}
