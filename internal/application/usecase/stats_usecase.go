package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

// StatsUseCase métricas agregadas del inventario para el dashboard.
type StatsUseCase struct {
	items      repository.InventoryRepository
	categories repository.CategoryRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(items repository.InventoryRepository, categories repository.CategoryRepository) *StatsUseCase {
	return &StatsUseCase{items: items, categories: categories}
}

// Dashboard calcula las métricas sobre el inventario completo. Los artículos
// sin categoría se agrupan bajo "Uncategorized".
func (uc *StatsUseCase) Dashboard(ctx context.Context) (*dto.DashboardStats, error) {
	items, err := uc.items.List(ctx, repository.InventoryFilters{})
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		TotalValue:      decimal.Zero,
		CategoriesCount: len(categories),
		InventoryCount:  len(items),
		TopCategories:   make(map[string]dto.CategoryStats),
	}

	for _, item := range items {
		value := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		stats.TotalItems += item.Quantity
		stats.TotalValue = stats.TotalValue.Add(value)
		if item.IsLowStock() {
			stats.LowStockCount++
		}

		name := "Uncategorized"
		if item.CategoryName != nil && *item.CategoryName != "" {
			name = *item.CategoryName
		}
		cs := stats.TopCategories[name]
		cs.Count += item.Quantity
		cs.Value = cs.Value.Add(value)
		stats.TopCategories[name] = cs
	}

	return stats, nil
}
