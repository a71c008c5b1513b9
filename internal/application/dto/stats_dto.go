package dto

import "github.com/shopspring/decimal"

// CategoryStats conteo y valor acumulado por categoría.
type CategoryStats struct {
	Count int             `json:"count"` // unidades en stock
	Value decimal.Decimal `json:"value"` // unidades × precio
}

// DashboardStats métricas agregadas para el dashboard.
type DashboardStats struct {
	TotalItems      int                      `json:"totalItems"` // suma de cantidades
	TotalValue      decimal.Decimal          `json:"totalValue"`
	LowStockCount   int                      `json:"lowStockCount"`
	CategoriesCount int                      `json:"categoriesCount"`
	InventoryCount  int                      `json:"inventoryCount"` // número de artículos distintos
	TopCategories   map[string]CategoryStats `json:"topCategories"`
}
