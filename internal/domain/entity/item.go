package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultThreshold umbral de stock bajo cuando el artículo no define uno.
const DefaultThreshold = 10

// Item representa un artículo del inventario.
// Quantity nunca es negativa: toda operación que la llevaría por debajo de
// cero debe fallar, no recortarse.
type Item struct {
	ID          string
	Name        string
	CategoryID  *string // referencia débil: borrar la categoría deja el enlace en NULL
	Quantity    int
	Price       decimal.Decimal
	Threshold   int     // umbral de alerta de stock bajo (> 0)
	SKU         *string // único si está presente
	Barcode     *string
	Description string
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Campos denormalizados en lecturas (JOIN con categories y users).
	CategoryName      *string
	CreatedByUsername *string
}

// IsLowStock indica si el artículo está en o por debajo de su umbral.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.Threshold
}
