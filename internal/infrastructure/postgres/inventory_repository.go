package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia para el inventario.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// selectItem incluye los JOIN denormalizados con categoría y creador.
const selectItem = `
	SELECT i.id, i.name, i.category_id, i.quantity, i.price, i.threshold,
	       i.sku, i.barcode, i.description, i.created_by, i.created_at, i.updated_at,
	       c.name AS category_name, u.username AS created_by_username
	FROM inventory i
	LEFT JOIN categories c ON c.id = i.category_id
	LEFT JOIN users u ON u.id = i.created_by`

// Create persiste un nuevo artículo. Devuelve domain.ErrSKUExists si el SKU ya está registrado.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO inventory (id, name, category_id, quantity, price, threshold, sku, barcode, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.CategoryID, item.Quantity, item.Price, item.Threshold,
		item.SKU, item.Barcode, item.Description, item.CreatedBy, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID con los campos denormalizados.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, selectItem+` WHERE i.id = $1`, id).Scan(
		&it.ID, &it.Name, &it.CategoryID, &it.Quantity, &it.Price, &it.Threshold,
		&it.SKU, &it.Barcode, &it.Description, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
		&it.CategoryName, &it.CreatedByUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List devuelve artículos filtrados, más recientes primero.
func (r *InventoryRepo) List(ctx context.Context, filters repository.InventoryFilters) ([]*entity.Item, error) {
	query := selectItem + ` WHERE 1=1`
	var args []any

	if filters.CategoryID != "" {
		args = append(args, filters.CategoryID)
		query += fmt.Sprintf(` AND i.category_id = $%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (i.name ILIKE $%d OR i.description ILIKE $%d OR i.sku ILIKE $%d)`, n, n, n)
	}
	if filters.LowStock {
		query += ` AND i.quantity <= i.threshold`
	}

	query += ` ORDER BY i.created_at DESC`

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
		args = append(args, filters.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.CategoryID, &it.Quantity, &it.Price, &it.Threshold,
			&it.SKU, &it.Barcode, &it.Description, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
			&it.CategoryName, &it.CreatedByUsername,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables del artículo (no es un patch parcial).
func (r *InventoryRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE inventory
		SET name = $2, category_id = $3, quantity = $4, price = $5, threshold = $6,
		    sku = $7, barcode = $8, description = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.CategoryID, item.Quantity, item.Price, item.Threshold,
		item.SKU, item.Barcode, item.Description, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUExists
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementQuantity descuenta stock de forma condicional y atómica: la cláusula
// quantity >= $2 cierra la ventana de carrera entre dos ventas concurrentes
// sobre el mismo artículo. Sin fila afectada el stock es insuficiente; con
// fila afectada RETURNING entrega la cantidad que quedó tras el descuento.
func (r *InventoryRepo) DecrementQuantity(ctx context.Context, id string, qty int) (int, bool, error) {
	var remaining int
	err := r.q.QueryRow(ctx,
		`UPDATE inventory SET quantity = quantity - $2, updated_at = now() WHERE id = $1 AND quantity >= $2 RETURNING quantity`,
		id, qty,
	).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("decrement quantity: %w", err)
	}
	return remaining, true, nil
}

// Delete elimina un artículo por ID. Devuelve domain.ErrNotFound si no existe.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
