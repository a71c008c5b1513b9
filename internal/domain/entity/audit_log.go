package entity

import (
	"encoding/json"
	"time"
)

// AuditLog entrada inmutable del registro de auditoría. Solo se agrega,
// nunca se actualiza ni se borra en operación normal. Los snapshots old/new
// se guardan como JSON opaco, no como diffs.
type AuditLog struct {
	ID         string
	UserID     *string // nil para acciones anónimas
	Action     string  // CREATE, UPDATE, DELETE, LOGIN, CLEAR, IMPORT...
	EntityType string  // inventory, sale, alerts, settings, user, data
	EntityID   *string
	OldValues  json.RawMessage
	NewValues  json.RawMessage
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time

	// Username del actor (JOIN en lecturas).
	Username *string
}
