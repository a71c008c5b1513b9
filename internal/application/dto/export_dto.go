package dto

import "time"

// ExportResponse snapshot completo de los datos de la aplicación.
type ExportResponse struct {
	Inventory  []ItemResponse     `json:"inventory"`
	Alerts     []AlertResponse    `json:"alerts"`
	Settings   SettingsResponse   `json:"settings"`
	Categories []CategoryResponse `json:"categories"`
	ExportDate time.Time          `json:"exportDate"`
	ExportedBy string             `json:"exportedBy"`
}

// ImportRequest snapshot a importar. Las categorías se cargan primero; los
// duplicados se saltan sin abortar la importación.
type ImportRequest struct {
	Inventory  []ItemRequest           `json:"inventory"`
	Categories []CreateCategoryRequest `json:"categories"`
	Settings   *UpdateSettingsRequest  `json:"settings"`
}

// ImportedCounts cuántas entidades se importaron efectivamente.
type ImportedCounts struct {
	Inventory  int `json:"inventory"`
	Categories int `json:"categories"`
}

// ImportResponse resultado de la importación.
type ImportResponse struct {
	Message  string         `json:"message"`
	Imported ImportedCounts `json:"imported"`
}

// QRPayload contenido codificado en el QR de un artículo.
type QRPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       *string   `json:"sku"`
	Barcode   *string   `json:"barcode"`
	Price     string    `json:"price"`
	Category  *string   `json:"category"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
}
