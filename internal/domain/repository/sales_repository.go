package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-digital/internal/domain/entity"
)

// TodaySummary agregado rápido para el dashboard.
type TodaySummary struct {
	TransactionCount int
	TotalRevenue     decimal.Decimal
}

// SalesRepository define el puerto de persistencia para el libro de ventas
// (solo inserción y consultas; las transacciones son inmutables).
type SalesRepository interface {
	Create(ctx context.Context, sale *entity.SaleTransaction) error
	ListByDate(ctx context.Context, date time.Time) ([]*entity.SaleTransaction, error)
	SummaryByRange(ctx context.Context, start, end time.Time) ([]*entity.DailySummary, error)
	SummaryForToday(ctx context.Context) (*TodaySummary, error)
}
