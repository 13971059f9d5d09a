package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas para dashboard y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// SalesTotalsByDay totales diarios de ventas (USD). Los días sin ventas no
// aparecen; el reporte los rellena con cero.
func (r *AnalyticsRepo) SalesTotalsByDay(from, to time.Time) ([]repository.DailySalesTotal, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT date_trunc('day', date) AS day, COALESCE(sum(total_usd), 0), count(*)
		FROM sales
		WHERE date >= $1 AND date <= $2
		GROUP BY day ORDER BY day`, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales totals by day: %w", err)
	}
	defer rows.Close()
	var list []repository.DailySalesTotal
	for rows.Next() {
		var t repository.DailySalesTotal
		if err := rows.Scan(&t.Day, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// NoRotationProducts productos activos sin movimientos desde cutoff, con la
// fecha del último movimiento si alguna vez tuvieron.
func (r *AnalyticsRepo) NoRotationProducts(cutoff time.Time) ([]repository.NoRotationProduct, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+productColumns+`,
		       (SELECT max(m.created_at) FROM inventory_movements m WHERE m.product_id = products.id) AS last_movement
		FROM products
		WHERE is_active AND id NOT IN (
			SELECT product_id FROM inventory_movements WHERE created_at >= $1
		)
		ORDER BY name`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("no rotation products: %w", err)
	}
	defer rows.Close()
	var list []repository.NoRotationProduct
	for rows.Next() {
		var p entity.Product
		var last *time.Time
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Quantity, &p.PriceBs, &p.PriceUSD, &p.CategoryID,
			&p.PartNumber, &p.Manufacturer, &p.Brand, &p.VehicleType, &p.Compatibility,
			&p.Location, &p.MinStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &last,
		); err != nil {
			return nil, fmt.Errorf("scan no rotation: %w", err)
		}
		list = append(list, repository.NoRotationProduct{Product: &p, LastMovementDate: last})
	}
	return list, rows.Err()
}

// CountNoRotation conteo de productos activos sin movimientos desde cutoff.
func (r *AnalyticsRepo) CountNoRotation(cutoff time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM products
		WHERE is_active AND id NOT IN (
			SELECT product_id FROM inventory_movements WHERE created_at >= $1
		)`, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count no rotation: %w", err)
	}
	return count, nil
}
