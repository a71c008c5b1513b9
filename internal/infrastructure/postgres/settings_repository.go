package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
// La tabla settings tiene una única fila (id = 1) sembrada por migración.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de persistencia de configuración.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get lee la fila única de configuración.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(ctx, `
		SELECT language, currency, default_threshold, enable_alerts, theme, updated_at
		FROM settings WHERE id = 1`,
	).Scan(&s.Language, &s.Currency, &s.DefaultThreshold, &s.EnableAlerts, &s.Theme, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Update reemplaza la fila única de configuración.
func (r *SettingsRepo) Update(ctx context.Context, settings *entity.Settings) error {
	_, err := r.q.Exec(ctx, `
		UPDATE settings
		SET language = $1, currency = $2, default_threshold = $3, enable_alerts = $4, theme = $5, updated_at = now()
		WHERE id = 1`,
		settings.Language, settings.Currency, settings.DefaultThreshold,
		settings.EnableAlerts, settings.Theme,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
