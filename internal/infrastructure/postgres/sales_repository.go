package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementación del puerto SalesRepository sobre PostgreSQL (usable con pool o tx).
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de persistencia del libro de ventas.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// Create inserta una transacción de venta. El libro es append-only: no hay Update ni Delete.
func (r *SalesRepo) Create(ctx context.Context, sale *entity.SaleTransaction) error {
	query := `
		INSERT INTO sales_transactions (id, item_id, item_name, quantity_sold, unit_price, total_amount, sale_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ItemID, sale.ItemName, sale.QuantitySold,
		sale.UnitPrice, sale.TotalAmount, sale.SaleDate, sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByDate devuelve las ventas de un día, más recientes primero.
func (r *SalesRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.SaleTransaction, error) {
	query := `
		SELECT id, item_id, item_name, quantity_sold, unit_price, total_amount, sale_date, created_at, created_by
		FROM sales_transactions
		WHERE sale_date = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list sales by date: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleTransaction
	for rows.Next() {
		var s entity.SaleTransaction
		if err := rows.Scan(&s.ID, &s.ItemID, &s.ItemName, &s.QuantitySold,
			&s.UnitPrice, &s.TotalAmount, &s.SaleDate, &s.CreatedAt, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SummaryByRange agrupa ventas por día dentro del rango [start, end].
func (r *SalesRepo) SummaryByRange(ctx context.Context, start, end time.Time) ([]*entity.DailySummary, error) {
	query := `
		SELECT sale_date,
		       COUNT(*)                      AS transaction_count,
		       COALESCE(SUM(quantity_sold), 0) AS total_quantity,
		       COALESCE(SUM(total_amount), 0)  AS total_revenue
		FROM sales_transactions
		WHERE sale_date BETWEEN $1 AND $2
		GROUP BY sale_date
		ORDER BY sale_date DESC`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	defer rows.Close()

	var list []*entity.DailySummary
	for rows.Next() {
		var s entity.DailySummary
		if err := rows.Scan(&s.SaleDate, &s.TransactionCount, &s.TotalQuantity, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SummaryForToday devuelve el agregado rápido del día para el dashboard.
func (r *SalesRepo) SummaryForToday(ctx context.Context) (*repository.TodaySummary, error) {
	var out repository.TodaySummary
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM sales_transactions
		WHERE sale_date = CURRENT_DATE`,
	).Scan(&out.TransactionCount, &out.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("today summary: %w", err)
	}
	return &out, nil
}
