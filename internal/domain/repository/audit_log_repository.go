package repository

import (
	"context"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
)

// AuditFilters filtros para la consulta del registro de auditoría.
type AuditFilters struct {
	UserID     string
	EntityType string
	EntityID   string
	Limit      int
}

// AuditLogRepository define el puerto de persistencia para AuditLog (append-only).
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filters AuditFilters) ([]*entity.AuditLog, error)
}
