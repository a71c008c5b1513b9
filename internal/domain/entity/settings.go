package entity

import "time"

// Settings configuración global de la aplicación (fila única id=1).
type Settings struct {
	Language         string
	Currency         string // código ISO 4217, ej. EUR, USD, COP
	DefaultThreshold int
	EnableAlerts     bool // apaga la reconciliación de alertas si es false
	Theme            string
	UpdatedAt        time.Time
}
