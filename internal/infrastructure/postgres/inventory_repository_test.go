package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests InventoryRepo con pgxmock
// ──────────────────────────────────────────────────────────────────────────────

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "todas las expectativas deben cumplirse")
		mock.Close()
	})
	return mock
}

func testItem() *entity.Item {
	sku := "SKU-001"
	now := time.Now()
	return &entity.Item{
		ID:        "11111111-1111-1111-1111-111111111111",
		Name:      "Tornillos",
		Quantity:  100,
		Price:     decimal.NewFromFloat(9.99),
		Threshold: 10,
		SKU:       &sku,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// El descuento condicional devuelve la cantidad que dejó la fila (RETURNING).
func TestDecrementQuantity_ConStock(t *testing.T) {
	mock := newMock(t)
	repo := NewInventoryRepository(mock)

	mock.ExpectQuery(`UPDATE inventory SET quantity = quantity - \$2`).
		WithArgs("item-1", 3).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(97))

	remaining, ok, err := repo.DecrementQuantity(context.Background(), "item-1", 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 97, remaining)
}

// Sin fila devuelta: la cláusula quantity >= qty no encontró fila, el
// stock es insuficiente y la fila quedó intacta.
func TestDecrementQuantity_SinStock(t *testing.T) {
	mock := newMock(t)
	repo := NewInventoryRepository(mock)

	mock.ExpectQuery(`UPDATE inventory SET quantity = quantity - \$2`).
		WithArgs("item-1", 500).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}))

	_, ok, err := repo.DecrementQuantity(context.Background(), "item-1", 500)
	require.NoError(t, err)
	assert.False(t, ok, "sin stock suficiente no debe tocar la fila")
}

// La violación del índice único de SKU se traduce al error de dominio.
func TestCreate_SKUDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := NewInventoryRepository(mock)

	mock.ExpectExec(`INSERT INTO inventory`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "inventory_sku_key"})

	err := repo.Create(context.Background(), testItem())
	assert.ErrorIs(t, err, domain.ErrSKUExists)
}

// Update sobre un ID inexistente devuelve not found (cero filas afectadas).
func TestUpdate_NoExiste(t *testing.T) {
	mock := newMock(t)
	repo := NewInventoryRepository(mock)

	mock.ExpectExec(`UPDATE inventory`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), testItem())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Delete sobre un ID inexistente devuelve not found.
func TestDelete_NoExiste(t *testing.T) {
	mock := newMock(t)
	repo := NewInventoryRepository(mock)

	mock.ExpectExec(`DELETE FROM inventory`).
		WithArgs("nada").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
