package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

// SettingsUseCase gestiona la fila única de configuración global.
type SettingsUseCase struct {
	settings   repository.SettingsRepository
	reconciler *alerts.Reconciler
	audit      *audit.Recorder
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(
	settings repository.SettingsRepository,
	reconciler *alerts.Reconciler,
	auditRec *audit.Recorder,
) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, reconciler: reconciler, audit: auditRec}
}

// Get devuelve la configuración vigente.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// Update aplica una actualización parcial: los campos ausentes conservan su
// valor. Tras guardar se reconcilia, de modo que reactivar las alertas las
// recalcula de inmediato. Con las alertas deshabilitadas la reconciliación no
// hace nada; las pendientes quedan hasta que alguien las resuelva.
func (uc *SettingsUseCase) Update(ctx context.Context, meta audit.Meta, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	current, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	before := toSettingsResponse(current)

	updated := *current
	if in.Language != nil {
		updated.Language = strings.TrimSpace(*in.Language)
	}
	if in.Currency != nil {
		updated.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.DefaultThreshold != nil {
		if *in.DefaultThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		updated.DefaultThreshold = *in.DefaultThreshold
	}
	if in.EnableAlerts != nil {
		updated.EnableAlerts = *in.EnableAlerts
	}
	if in.Theme != nil {
		updated.Theme = strings.TrimSpace(*in.Theme)
	}
	updated.UpdatedAt = time.Now()

	if err := uc.settings.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if err := uc.reconciler.Reconcile(ctx); err != nil {
		return nil, err
	}

	resp := toSettingsResponse(&updated)
	uc.audit.Record(ctx, meta, "UPDATE", "settings", nil, before, resp)
	return resp, nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Language:         s.Language,
		Currency:         s.Currency,
		DefaultThreshold: s.DefaultThreshold,
		EnableAlerts:     s.EnableAlerts,
		Theme:            s.Theme,
		UpdatedAt:        s.UpdatedAt,
	}
}
