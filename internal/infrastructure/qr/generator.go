// Package qr genera códigos QR PNG para etiquetar artículos del inventario.
package qr

import (
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
)

const (
	defaultSize = 300
	maxSize     = 1024
)

// Generator codifica el payload de un artículo en un PNG.
type Generator struct {
	baseURL string
}

// NewGenerator construye el generador. baseURL se usa para el enlace directo
// al artículo dentro del QR.
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

// ForItem genera el PNG del QR con el snapshot del artículo en JSON.
// size es el lado del PNG en píxeles; fuera de rango se usa el tamaño por defecto.
func (g *Generator) ForItem(item *entity.Item, size int) ([]byte, error) {
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	payload := dto.QRPayload{
		ID:        item.ID,
		Name:      item.Name,
		SKU:       item.SKU,
		Barcode:   item.Barcode,
		Price:     item.Price.StringFixed(2),
		Category:  item.CategoryName,
		URL:       fmt.Sprintf("%s/?item=%s", g.baseURL, item.ID),
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("qr: serializar payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	return png, nil
}
