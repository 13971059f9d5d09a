// migrate crea el esquema de la base de datos y siembra los datos mínimos:
// el usuario admin inicial y la tasa de cambio por defecto.
//
// Uso: go run ./cmd/migrate
// Variables: DATABASE_URL o DB_*, ADMIN_USERNAME, ADMIN_PASSWORD, ADMIN_EMAIL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmreyes/repuestos-api/internal/infrastructure/postgres"
	"github.com/dmreyes/repuestos-api/pkg/config"
	"github.com/dmreyes/repuestos-api/pkg/logger"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		quantity      INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		price_bs      NUMERIC(14,2) NOT NULL DEFAULT 0,
		price_usd     NUMERIC(14,2) NOT NULL DEFAULT 0,
		category_id   UUID REFERENCES categories(id) ON DELETE SET NULL,
		part_number   TEXT NOT NULL DEFAULT '',
		manufacturer  TEXT NOT NULL DEFAULT '',
		brand         TEXT NOT NULL DEFAULT '',
		vehicle_type  TEXT NOT NULL DEFAULT '',
		compatibility TEXT NOT NULL DEFAULT '',
		location      TEXT NOT NULL DEFAULT '',
		min_stock     INTEGER NOT NULL DEFAULT 0,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'seller' CHECK (role IN ('admin', 'seller')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_movements (
		id          UUID PRIMARY KEY,
		product_id  UUID NOT NULL REFERENCES products(id),
		type        TEXT NOT NULL CHECK (type IN ('entrada', 'salida', 'ajuste')),
		quantity    INTEGER NOT NULL CHECK (quantity > 0),
		increases   BOOLEAN NOT NULL,
		description TEXT NOT NULL,
		user_id     UUID NOT NULL REFERENCES users(id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_created
		ON inventory_movements (product_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id        UUID PRIMARY KEY,
		date      TIMESTAMPTZ NOT NULL DEFAULT now(),
		total_bs  NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_usd NUMERIC(14,2) NOT NULL DEFAULT 0,
		user_id   UUID NOT NULL REFERENCES users(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date DESC)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id           UUID PRIMARY KEY,
		sale_id      UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id   UUID NOT NULL REFERENCES products(id),
		product_name TEXT NOT NULL,
		quantity     INTEGER NOT NULL CHECK (quantity > 0),
		price_bs     NUMERIC(14,2) NOT NULL,
		price_usd    NUMERIC(14,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS login_attempts (
		id         UUID PRIMARY KEY,
		username   TEXT NOT NULL,
		ip_address TEXT NOT NULL,
		success    BOOLEAN NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_login_attempts_username_created
		ON login_attempts (username, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_login_attempts_ip_created
		ON login_attempts (ip_address, created_at DESC)`,
	`INSERT INTO settings (key, value) VALUES ('exchange_rate', '1')
		ON CONFLICT (key) DO NOTHING`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatal().Err(err).Msg("ejecutar DDL")
		}
	}
	log.Info().Msg("esquema creado")

	if err := seedAdmin(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("sembrar usuario admin")
	}
	log.Info().Msg("migración completa")
}

// seedAdmin crea el usuario admin inicial si no existe ninguno. Credenciales
// vía ADMIN_USERNAME / ADMIN_PASSWORD / ADMIN_EMAIL.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE role = 'admin'`).Scan(&count); err != nil {
		return fmt.Errorf("contar admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	username := envOr("ADMIN_USERNAME", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD es requerido para sembrar el primer admin")
	}
	email := envOr("ADMIN_EMAIL", "")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, 'admin', $5)`,
		uuid.New().String(), username, email, string(hash), time.Now())
	if err != nil {
		return fmt.Errorf("insertar admin: %w", err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
