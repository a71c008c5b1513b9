package repository

import (
	"context"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para Alert.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// ListUnresolved devuelve las alertas sin resolver, más recientes primero.
	ListUnresolved(ctx context.Context) ([]*entity.Alert, error)
	// ResolveAll marca todas las alertas sin resolver como resueltas y
	// devuelve cuántas filas cambió.
	ResolveAll(ctx context.Context) (int, error)
	// DeleteByItemID elimina todas las alertas de un artículo (cascada manual
	// previa al borrado del artículo).
	DeleteByItemID(ctx context.Context, itemID string) error
}
