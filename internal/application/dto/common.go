package dto

// Pagination metadatos de página en listados.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP. Los campos opcionales transportan
// contexto adicional según el error (intentos restantes, stock disponible...).
type ErrorResponse struct {
	Code              string   `json:"code"`
	Message           string   `json:"message"`
	AttemptsRemaining *int     `json:"attemptsRemaining,omitempty"`
	Locked            bool     `json:"locked,omitempty"`
	RetryAfterMinutes *int     `json:"retryAfter,omitempty"` // minutos hasta que expire el bloqueo
	Available         *int     `json:"available,omitempty"`  // stock disponible en errores de venta
	Requested         *int     `json:"requested,omitempty"`
	Details           []string `json:"details,omitempty"`
}

// MessageResponse respuesta simple de éxito.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
