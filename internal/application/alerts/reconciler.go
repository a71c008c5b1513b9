// Package alerts implementa el motor de reconciliación de alertas de stock
// bajo. Las alertas son una vista derivada del inventario: tras cada
// reconciliación, el conjunto de alertas sin resolver coincide exactamente
// con los artículos cuyo quantity <= threshold.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

// Reconciler recalcula el conjunto de alertas contra el inventario completo.
// Recompute total en cada mutación: correcto por construcción y suficiente
// para inventarios pequeños; una versión por artículo tendría que preservar
// la misma igualdad de conjuntos.
type Reconciler struct {
	settings  repository.SettingsRepository
	inventory repository.InventoryRepository
	alerts    repository.AlertRepository
}

// NewReconciler construye el motor.
func NewReconciler(
	settings repository.SettingsRepository,
	inventory repository.InventoryRepository,
	alerts repository.AlertRepository,
) *Reconciler {
	return &Reconciler{settings: settings, inventory: inventory, alerts: alerts}
}

// Reconcile resuelve todas las alertas pendientes y crea una alerta fresca
// por cada artículo en stock bajo. Si las alertas están deshabilitadas en la
// configuración, no hace nada. Un error aquí deja el estado derivado
// inconsistente con el inventario, por lo que debe propagarse al caller (a
// diferencia de la auditoría, que es best-effort).
func (r *Reconciler) Reconcile(ctx context.Context) error {
	settings, err := r.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("reconciliar alertas: leer configuración: %w", err)
	}
	if !settings.EnableAlerts {
		return nil
	}

	items, err := r.inventory.List(ctx, repository.InventoryFilters{})
	if err != nil {
		return fmt.Errorf("reconciliar alertas: leer inventario: %w", err)
	}

	if _, err := r.alerts.ResolveAll(ctx); err != nil {
		return fmt.Errorf("reconciliar alertas: resolver pendientes: %w", err)
	}

	now := time.Now()
	for _, item := range items {
		if !item.IsLowStock() {
			continue
		}
		alert := &entity.Alert{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  item.Quantity,
			Threshold: item.Threshold,
			CreatedAt: now,
		}
		if err := r.alerts.Create(ctx, alert); err != nil {
			return fmt.Errorf("reconciliar alertas: crear alerta para %s: %w", item.ID, err)
		}
	}
	return nil
}
