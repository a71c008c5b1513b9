// Package audit agrega entradas al registro de auditoría con semántica
// best-effort: un fallo al escribir la entrada se registra en el log
// operacional y jamás hace fallar la mutación que lo disparó.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
	"github.com/jhoicas/inventario-digital/pkg/logger"
)

// Meta datos del actor y de la petición que originó la mutación.
type Meta struct {
	UserID    *string
	IPAddress string
	UserAgent string
}

// Recorder escribe entradas de auditoría de forma no crítica.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record serializa los snapshots old/new y agrega la entrada. Nunca devuelve
// error: la auditoría no tiene poder de veto sobre la operación de negocio.
func (r *Recorder) Record(ctx context.Context, meta Meta, action, entityType string, entityID *string, oldValue, newValue any) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     meta.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  marshalSnapshot(oldValue),
		NewValues:  marshalSnapshot(newValue),
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		CreatedAt:  time.Now(),
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.log.Error().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Msg("no se pudo escribir la entrada de auditoría")
	}
}

func marshalSnapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
