package entity

import "time"

// Category agrupa artículos del inventario. Se crea de forma perezosa cuando
// un artículo referencia un nombre de categoría que aún no existe.
type Category struct {
	ID          string
	Name        string // único
	Description string
	CreatedAt   time.Time
}
