package alerts

import (
	"context"

	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

// UseCase consultas, limpieza y recálculo de alertas.
type UseCase struct {
	alerts     repository.AlertRepository
	reconciler *Reconciler
	audit      *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(alerts repository.AlertRepository, reconciler *Reconciler, auditRec *audit.Recorder) *UseCase {
	return &UseCase{alerts: alerts, reconciler: reconciler, audit: auditRec}
}

// List devuelve las alertas sin resolver, más recientes primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.AlertResponse, error) {
	alerts, err := uc.alerts.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, ToAlertResponse(a))
	}
	return out, nil
}

// ClearAll marca todas las alertas pendientes como resueltas. La siguiente
// reconciliación las recreará si el stock sigue bajo.
func (uc *UseCase) ClearAll(ctx context.Context, meta audit.Meta) (*dto.ClearAlertsResponse, error) {
	resolved, err := uc.alerts.ResolveAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClearAlertsResponse{
		Message:  "Alertas resueltas",
		Resolved: resolved,
	}
	uc.audit.Record(ctx, meta, "CLEAR", "alerts", nil, nil, resp)
	return resp, nil
}

// Refresh fuerza una reconciliación inmediata y devuelve el conjunto
// resultante de alertas sin resolver.
func (uc *UseCase) Refresh(ctx context.Context) ([]dto.AlertResponse, error) {
	if err := uc.reconciler.Reconcile(ctx); err != nil {
		return nil, err
	}
	return uc.List(ctx)
}

// ToAlertResponse convierte la entidad al DTO de respuesta.
func ToAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:              a.ID,
		ItemID:          a.ItemID,
		ItemName:        a.ItemName,
		Quantity:        a.Quantity,
		Threshold:       a.Threshold,
		CurrentQuantity: a.CurrentQuantity,
		IsResolved:      a.IsResolved,
		ResolvedAt:      a.ResolvedAt,
		CreatedAt:       a.CreatedAt,
	}
}
