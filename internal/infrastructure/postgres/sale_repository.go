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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateHeader inserta la cabecera de la venta (totales en cero, se
// actualizan al cerrar el checkout).
func (r *SaleRepo) CreateHeader(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sales (id, date, total_bs, total_usd, user_id) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, sale.Date, sale.TotalBs, sale.TotalUSD, sale.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea con su snapshot de nombre y precios.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, price_bs, price_usd)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.SaleID, item.ProductID, item.ProductName, item.Quantity, item.PriceBs, item.PriceUSD,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// UpdateTotals escribe los totales finales de la cabecera.
func (r *SaleRepo) UpdateTotals(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET total_bs = $2, total_usd = $3 WHERE id = $1`,
		sale.ID, sale.TotalBs, sale.TotalUSD,
	)
	if err != nil {
		return fmt.Errorf("update sale totals: %w", err)
	}
	return nil
}

// GetByID devuelve la venta con sus items, nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(),
		`SELECT id, date, total_bs, total_usd, user_id FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.Date, &s.TotalBs, &s.TotalUSD, &s.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, sale_id, product_id, product_name, quantity, price_bs, price_usd
		 FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceBs, &it.PriceUSD); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// List ventas paginadas, más recientes primero (sin items).
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, date, total_bs, total_usd, user_id FROM sales
		 ORDER BY date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return r.scanMany(rows)
}

// ListSince ventas desde una fecha (para resúmenes).
func (r *SaleRepo) ListSince(since time.Time) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, date, total_bs, total_usd, user_id FROM sales
		 WHERE date >= $1 ORDER BY date DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("list sales since: %w", err)
	}
	return r.scanMany(rows)
}

func (r *SaleRepo) scanMany(rows pgx.Rows) ([]*entity.Sale, error) {
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.TotalBs, &s.TotalUSD, &s.UserID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
