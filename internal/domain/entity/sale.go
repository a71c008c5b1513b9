package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTransaction es una entrada del libro de ventas: inmutable una vez
// creada. Nombre y precio unitario se capturan al momento de la venta y no
// cambian aunque el artículo se edite después. TotalAmount se almacena, no se
// recalcula.
type SaleTransaction struct {
	ID           string
	ItemID       string
	ItemName     string
	QuantitySold int // > 0
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal // QuantitySold × UnitPrice al momento de la venta
	SaleDate     time.Time       // solo fecha (YYYY-MM-DD)
	CreatedAt    time.Time
	CreatedBy    *string
}

// DailySummary agregado de ventas de un día.
type DailySummary struct {
	SaleDate         time.Time
	TransactionCount int
	TotalQuantity    int
	TotalRevenue     decimal.Decimal
}
