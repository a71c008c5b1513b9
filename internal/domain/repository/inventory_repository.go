package repository

import (
	"context"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
)

// InventoryFilters filtros de listado de inventario.
type InventoryFilters struct {
	Search     string // busca en name, description y sku
	CategoryID string
	LowStock   bool // solo artículos con quantity <= threshold
	Limit      int  // 0 = sin paginación
	Offset     int
}

// InventoryRepository define el puerto de persistencia para Item.
type InventoryRepository interface {
	// Create inserta el artículo; devuelve domain.ErrSKUExists si el SKU ya existe.
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, filters InventoryFilters) ([]*entity.Item, error)
	// Update reemplaza los campos mutables del artículo.
	Update(ctx context.Context, item *entity.Item) error
	// DecrementQuantity resta qty de forma condicional y atómica: no toca la
	// fila si quantity < qty y devuelve ok=false en ese caso (stock
	// insuficiente). Con ok=true, remaining es la cantidad que dejó la fila.
	DecrementQuantity(ctx context.Context, id string, qty int) (remaining int, ok bool, err error)
	Delete(ctx context.Context, id string) error
}
