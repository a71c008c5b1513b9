package repository

import (
	"context"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
)

// SettingsRepository define el puerto de persistencia para la fila única de Settings.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, settings *entity.Settings) error
}
