package entity

import "time"

// Alert es una vista materializada de stock bajo: un snapshot de
// nombre/cantidad/umbral al momento de crearla. El conjunto de alertas sin
// resolver debe coincidir exactamente con los artículos en stock bajo después
// de cada reconciliación; las alertas no son fuente de verdad.
type Alert struct {
	ID         string
	ItemID     string
	ItemName   string // snapshot al crear la alerta
	Quantity   int    // snapshot
	Threshold  int    // snapshot
	IsResolved bool
	ResolvedAt *time.Time
	CreatedAt  time.Time

	// Cantidad actual del artículo (JOIN en lecturas; nil si el item ya no existe).
	CurrentQuantity *int
}
