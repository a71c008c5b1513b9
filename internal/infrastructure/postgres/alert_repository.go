package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de persistencia para alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create inserta una alerta sin resolver con el snapshot del artículo.
func (r *AlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, item_id, item_name, quantity, threshold, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)`
	_, err := r.q.Exec(ctx, query,
		alert.ID, alert.ItemID, alert.ItemName, alert.Quantity, alert.Threshold, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// ListUnresolved devuelve las alertas sin resolver con la cantidad actual del artículo.
func (r *AlertRepo) ListUnresolved(ctx context.Context) ([]*entity.Alert, error) {
	query := `
		SELECT a.id, a.item_id, a.item_name, a.quantity, a.threshold,
		       a.is_resolved, a.resolved_at, a.created_at, i.quantity AS current_quantity
		FROM alerts a
		LEFT JOIN inventory i ON i.id = a.item_id
		WHERE a.is_resolved = FALSE
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.ItemID, &a.ItemName, &a.Quantity, &a.Threshold,
			&a.IsResolved, &a.ResolvedAt, &a.CreatedAt, &a.CurrentQuantity); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ResolveAll marca resueltas todas las alertas pendientes y devuelve cuántas cambió.
func (r *AlertRepo) ResolveAll(ctx context.Context) (int, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE alerts SET is_resolved = TRUE, resolved_at = now() WHERE is_resolved = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("resolve alerts: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// DeleteByItemID elimina las alertas de un artículo (antes de borrar el artículo).
func (r *AlertRepo) DeleteByItemID(ctx context.Context, itemID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete alerts by item: %w", err)
	}
	return nil
}
