package dto

import "time"

// AlertResponse alerta de stock bajo con la cantidad actual del artículo.
type AlertResponse struct {
	ID              string     `json:"id"`
	ItemID          string     `json:"item_id"`
	ItemName        string     `json:"item_name"`
	Quantity        int        `json:"quantity"`  // snapshot al crear la alerta
	Threshold       int        `json:"threshold"` // snapshot
	CurrentQuantity *int       `json:"current_quantity"`
	IsResolved      bool       `json:"is_resolved"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	CreatedAt       time.Time  `json:"timestamp"`
}

// ClearAlertsResponse resultado de resolver todas las alertas.
type ClearAlertsResponse struct {
	Message  string `json:"message"`
	Resolved int    `json:"resolved"`
}
