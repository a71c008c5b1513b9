// Package sales implementa el registro de ventas y sus consultas. El registro
// es transaccional: la entrada en el libro de ventas y el descuento de stock
// se confirman o revierten juntos.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InsufficientStockError transporta las cantidades del fallo de stock para
// que el handler pueda informarlas al cliente.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

// Unwrap permite el match con domain.ErrInsufficientStock vía errors.Is.
func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// TxRunner ejecuta fn dentro de una transacción, entregando repositorios
// ligados a ella. Si fn devuelve error la transacción se revierte.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		salesRepo repository.SalesRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// UseCase casos de uso de ventas.
type UseCase struct {
	items      repository.InventoryRepository
	salesRepo  repository.SalesRepository
	tx         TxRunner
	reconciler *alerts.Reconciler
	audit      *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	items repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	tx TxRunner,
	reconciler *alerts.Reconciler,
	auditRec *audit.Recorder,
) *UseCase {
	return &UseCase{
		items:      items,
		salesRepo:  salesRepo,
		tx:         tx,
		reconciler: reconciler,
		audit:      auditRec,
	}
}

// RecordSale registra una venta: inserta la transacción y descuenta el stock
// de forma atómica. El descuento es condicional (quantity >= qty), así una
// venta concurrente que agote el stock hace fallar esta con stock
// insuficiente en lugar de dejar la cantidad en negativo.
func (uc *UseCase) RecordSale(ctx context.Context, meta audit.Meta, in dto.RecordSaleRequest) (*dto.RecordSaleResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.items.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Quantity < in.Quantity {
		return nil, &InsufficientStockError{Available: item.Quantity, Requested: in.Quantity}
	}

	now := time.Now()
	sale := &entity.SaleTransaction{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		ItemName:     item.Name,
		QuantitySold: in.Quantity,
		UnitPrice:    item.Price,
		TotalAmount:  item.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		SaleDate:     now,
		CreatedAt:    now,
		CreatedBy:    meta.UserID,
	}

	// remaining viene del propio UPDATE, no de la lectura previa: si otra venta
	// se cuela entre la lectura y el descuento, las cantidades reportadas
	// siguen siendo las reales.
	var remaining int
	err = uc.tx.RunSale(ctx, func(salesRepo repository.SalesRepository, invRepo repository.InventoryRepository) error {
		if err := salesRepo.Create(ctx, sale); err != nil {
			return err
		}
		left, ok, err := invRepo.DecrementQuantity(ctx, item.ID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			// Una venta concurrente agotó el stock entre la lectura y el descuento.
			return &InsufficientStockError{Available: item.Quantity, Requested: in.Quantity}
		}
		remaining = left
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.reconciler.Reconcile(ctx); err != nil {
		return nil, err
	}

	resp := &dto.RecordSaleResponse{
		Message: "Venta registrada",
		Sale:    ToSaleResponse(sale),
		UpdatedInventory: dto.UpdatedInventory{
			ID:               item.ID,
			Name:             item.Name,
			PreviousQuantity: remaining + in.Quantity,
			NewQuantity:      remaining,
		},
	}
	uc.audit.Record(ctx, meta, "SALE", "sales_transaction", &sale.ID, nil, resp.Sale)
	return resp, nil
}

// Daily devuelve las ventas de un día con su resumen. date en YYYY-MM-DD;
// vacío usa el día actual.
func (uc *UseCase) Daily(ctx context.Context, date string) (*dto.DailySalesResponse, error) {
	day := time.Now()
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		day = parsed
	}

	sales, err := uc.salesRepo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	summary := dto.DailySalesSummary{
		Date:         day.Format(dateLayout),
		TotalRevenue: decimal.Zero,
	}
	transactions := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		summary.TransactionCount++
		summary.TotalItemsSold += s.QuantitySold
		summary.TotalRevenue = summary.TotalRevenue.Add(s.TotalAmount)
		transactions = append(transactions, ToSaleResponse(s))
	}

	return &dto.DailySalesResponse{Summary: summary, Transactions: transactions}, nil
}

// Summary devuelve el resumen por día dentro del rango [start, end], ambos en
// YYYY-MM-DD. Vacíos usan los últimos 30 días.
func (uc *UseCase) Summary(ctx context.Context, start, end string) ([]dto.SummaryRow, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	var err error
	if start != "" {
		startDate, err = time.Parse(dateLayout, start)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if end != "" {
		endDate, err = time.Parse(dateLayout, end)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if endDate.Before(startDate) {
		return nil, domain.ErrInvalidInput
	}

	rows, err := uc.salesRepo.SummaryByRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SummaryRow{
			SaleDate:         r.SaleDate.Format(dateLayout),
			TransactionCount: r.TransactionCount,
			TotalQuantity:    r.TotalQuantity,
			TotalRevenue:     r.TotalRevenue,
		})
	}
	return out, nil
}

// Today devuelve el agregado del día para el dashboard.
func (uc *UseCase) Today(ctx context.Context) (*dto.TodaySummaryResponse, error) {
	summary, err := uc.salesRepo.SummaryForToday(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TodaySummaryResponse{
		TransactionCount: summary.TransactionCount,
		TotalRevenue:     summary.TotalRevenue,
	}, nil
}

// ToSaleResponse convierte la entidad al DTO de respuesta.
func ToSaleResponse(s *entity.SaleTransaction) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID,
		ItemID:       s.ItemID,
		ItemName:     s.ItemName,
		QuantitySold: s.QuantitySold,
		UnitPrice:    s.UnitPrice,
		TotalAmount:  s.TotalAmount,
		SaleDate:     s.SaleDate.Format(dateLayout),
		CreatedAt:    s.CreatedAt,
		CreatedBy:    s.CreatedBy,
	}
}
