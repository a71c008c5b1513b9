package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest registro de una venta.
type RecordSaleRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// SaleResponse transacción del libro de ventas.
type SaleResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	QuantitySold int             `json:"quantity_sold"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SaleDate     string          `json:"sale_date"` // YYYY-MM-DD
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    *string         `json:"created_by"`
}

// UpdatedInventory cantidades antes/después del descuento, para mostrar al cliente.
type UpdatedInventory struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
}

// RecordSaleResponse venta registrada + inventario actualizado.
type RecordSaleResponse struct {
	Message          string           `json:"message"`
	Sale             SaleResponse     `json:"sale"`
	UpdatedInventory UpdatedInventory `json:"updated_inventory"`
}

// DailySalesSummary agregado de las ventas de un día.
type DailySalesSummary struct {
	Date             string          `json:"date"`
	TransactionCount int             `json:"transaction_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalItemsSold   int             `json:"total_items_sold"`
}

// DailySalesResponse ventas de un día con su resumen.
type DailySalesResponse struct {
	Summary      DailySalesSummary `json:"summary"`
	Transactions []SaleResponse    `json:"transactions"`
}

// SummaryRow fila del resumen por rango de fechas.
type SummaryRow struct {
	SaleDate         string          `json:"sale_date"`
	TransactionCount int             `json:"transaction_count"`
	TotalQuantity    int             `json:"total_quantity"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}

// TodaySummaryResponse agregado rápido del día para el dashboard.
type TodaySummaryResponse struct {
	TransactionCount int             `json:"transaction_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}
