package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del puerto AuditLogRepository sobre PostgreSQL.
// Solo inserta y consulta: el registro de auditoría nunca se modifica.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de persistencia de auditoría.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create agrega una entrada al registro.
func (r *AuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, old_values, new_values, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID,
		log.OldValues, log.NewValues, log.IPAddress, log.UserAgent, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List devuelve entradas filtradas con el username del actor, más recientes primero.
func (r *AuditLogRepo) List(ctx context.Context, filters repository.AuditFilters) ([]*entity.AuditLog, error) {
	query := `
		SELECT al.id, al.user_id, al.action, al.entity_type, al.entity_id,
		       al.old_values, al.new_values, al.ip_address, al.user_agent, al.created_at,
		       u.username
		FROM audit_logs al
		LEFT JOIN users u ON u.id = al.user_id
		WHERE 1=1`
	var args []any

	if filters.UserID != "" {
		args = append(args, filters.UserID)
		query += fmt.Sprintf(` AND al.user_id = $%d`, len(args))
	}
	if filters.EntityType != "" {
		args = append(args, filters.EntityType)
		query += fmt.Sprintf(` AND al.entity_type = $%d`, len(args))
	}
	if filters.EntityID != "" {
		args = append(args, filters.EntityID)
		query += fmt.Sprintf(` AND al.entity_id = $%d`, len(args))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY al.created_at DESC LIMIT $%d`, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID,
			&l.OldValues, &l.NewValues, &l.IPAddress, &l.UserAgent, &l.CreatedAt, &l.Username); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
