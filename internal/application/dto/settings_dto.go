package dto

import "time"

// SettingsResponse configuración global.
type SettingsResponse struct {
	Language         string    `json:"language"`
	Currency         string    `json:"currency"`
	DefaultThreshold int       `json:"default_threshold"`
	EnableAlerts     bool      `json:"enable_alerts"`
	Theme            string    `json:"theme"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpdateSettingsRequest actualización parcial: los campos nil conservan el
// valor actual (semántica heredada del endpoint original).
type UpdateSettingsRequest struct {
	Language         *string `json:"language"`
	Currency         *string `json:"currency"`
	DefaultThreshold *int    `json:"default_threshold"`
	EnableAlerts     *bool   `json:"enable_alerts"`
	Theme            *string `json:"theme"`
}
