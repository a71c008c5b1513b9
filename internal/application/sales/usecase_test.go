package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/application/sales"
	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
	"github.com/jhoicas/inventario-digital/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	items map[string]*entity.Item
}

func (r *fakeInventoryRepo) Create(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	if item, ok := r.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeInventoryRepo) List(_ context.Context, _ repository.InventoryFilters) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeInventoryRepo) DecrementQuantity(_ context.Context, id string, qty int) (int, bool, error) {
	item, ok := r.items[id]
	if !ok || item.Quantity < qty {
		return 0, false, nil
	}
	item.Quantity -= qty
	return item.Quantity, true, nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeSalesRepo struct {
	sales []*entity.SaleTransaction
}

func (r *fakeSalesRepo) Create(_ context.Context, s *entity.SaleTransaction) error {
	r.sales = append(r.sales, s)
	return nil
}

func (r *fakeSalesRepo) ListByDate(_ context.Context, date time.Time) ([]*entity.SaleTransaction, error) {
	out := []*entity.SaleTransaction{}
	for _, s := range r.sales {
		if s.SaleDate.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSalesRepo) SummaryByRange(_ context.Context, _, _ time.Time) ([]*entity.DailySummary, error) {
	return nil, nil
}

func (r *fakeSalesRepo) SummaryForToday(_ context.Context) (*repository.TodaySummary, error) {
	out := &repository.TodaySummary{TotalRevenue: decimal.Zero}
	today := time.Now().Format("2006-01-02")
	for _, s := range r.sales {
		if s.SaleDate.Format("2006-01-02") == today {
			out.TransactionCount++
			out.TotalRevenue = out.TotalRevenue.Add(s.TotalAmount)
		}
	}
	return out, nil
}

type fakeAlertRepo struct {
	alerts []*entity.Alert
}

func (r *fakeAlertRepo) Create(_ context.Context, a *entity.Alert) error {
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *fakeAlertRepo) ListUnresolved(_ context.Context) ([]*entity.Alert, error) {
	out := []*entity.Alert{}
	for _, a := range r.alerts {
		if !a.IsResolved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) ResolveAll(_ context.Context) (int, error) {
	n := 0
	for _, a := range r.alerts {
		if !a.IsResolved {
			a.IsResolved = true
			n++
		}
	}
	return n, nil
}

func (r *fakeAlertRepo) DeleteByItemID(_ context.Context, _ string) error { return nil }

type fakeSettingsRepo struct{}

func (r *fakeSettingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	return &entity.Settings{EnableAlerts: true}, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, _ *entity.Settings) error { return nil }

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	r.entries = append(r.entries, l)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _ repository.AuditFilters) ([]*entity.AuditLog, error) {
	return r.entries, nil
}

// fakeTxRunner simula la transacción tomando un snapshot del estado antes de
// fn y restaurándolo si fn falla.
type fakeTxRunner struct {
	salesRepo *fakeSalesRepo
	invRepo   *fakeInventoryRepo
}

func (tx *fakeTxRunner) RunSale(ctx context.Context, fn func(repository.SalesRepository, repository.InventoryRepository) error) error {
	salesBackup := make([]*entity.SaleTransaction, len(tx.salesRepo.sales))
	copy(salesBackup, tx.salesRepo.sales)
	invBackup := make(map[string]*entity.Item, len(tx.invRepo.items))
	for id, item := range tx.invRepo.items {
		cp := *item
		invBackup[id] = &cp
	}

	if err := fn(tx.salesRepo, tx.invRepo); err != nil {
		tx.salesRepo.sales = salesBackup
		tx.invRepo.items = invBackup
		return err
	}
	return nil
}

type fixture struct {
	uc        *sales.UseCase
	items     *fakeInventoryRepo
	salesRepo *fakeSalesRepo
	alertRepo *fakeAlertRepo
}

func newFixture(items ...*entity.Item) *fixture {
	invRepo := &fakeInventoryRepo{items: make(map[string]*entity.Item)}
	for _, item := range items {
		invRepo.items[item.ID] = item
	}
	salesRepo := &fakeSalesRepo{}
	alertRepo := &fakeAlertRepo{}
	tx := &fakeTxRunner{salesRepo: salesRepo, invRepo: invRepo}
	reconciler := alerts.NewReconciler(&fakeSettingsRepo{}, invRepo, alertRepo)
	recorder := audit.NewRecorder(&fakeAuditRepo{}, logger.Nop())

	return &fixture{
		uc:        sales.NewUseCase(invRepo, salesRepo, tx, reconciler, recorder),
		items:     invRepo,
		salesRepo: salesRepo,
		alertRepo: alertRepo,
	}
}

func meta() audit.Meta {
	id := "00000000-0000-0000-0000-000000000001"
	return audit.Meta{UserID: &id}
}

func item(id string, qty, threshold int, price int64) *entity.Item {
	return &entity.Item{
		ID:        id,
		Name:      "item-" + id,
		Quantity:  qty,
		Price:     decimal.NewFromInt(price),
		Threshold: threshold,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RecordSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYRegistraVenta(t *testing.T) {
	f := newFixture(item("a", 20, 5, 10))

	out, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 20, out.UpdatedInventory.PreviousQuantity)
	assert.Equal(t, 17, out.UpdatedInventory.NewQuantity)
	assert.Equal(t, "30", out.Sale.TotalAmount.String(), "total = precio x cantidad")

	got, _ := f.items.GetByID(context.Background(), "a")
	assert.Equal(t, 17, got.Quantity)
	assert.Len(t, f.salesRepo.sales, 1)
}

// La venta captura nombre y precio al momento de venderse: editar el artículo
// después no cambia la transacción.
func TestRecordSale_SnapshotInmutable(t *testing.T) {
	f := newFixture(item("a", 20, 5, 10))

	_, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: 1})
	require.NoError(t, err)

	it, _ := f.items.GetByID(context.Background(), "a")
	it.Name = "renombrado"
	it.Price = decimal.NewFromInt(999)
	require.NoError(t, f.items.Update(context.Background(), it))

	assert.Equal(t, "item-a", f.salesRepo.sales[0].ItemName)
	assert.Equal(t, "10", f.salesRepo.sales[0].UnitPrice.String())
}

func TestRecordSale_CantidadInvalida(t *testing.T) {
	f := newFixture(item("a", 20, 5, 10))

	for _, qty := range []int{0, -3} {
		_, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRecordSale_ArticuloInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "nada", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_StockInsuficiente(t *testing.T) {
	f := newFixture(item("a", 2, 5, 10))

	_, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: 5})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *sales.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	// Nada cambió: ni venta registrada ni stock descontado.
	assert.Empty(t, f.salesRepo.sales)
	got, _ := f.items.GetByID(context.Background(), "a")
	assert.Equal(t, 2, got.Quantity)
}

// Si el descuento condicional falla dentro de la transacción (venta
// concurrente que agotó el stock), la venta insertada se revierte con ella.
func TestRecordSale_DescuentoFalla_RevierteLaVenta(t *testing.T) {
	f := newFixture(item("a", 5, 2, 10))

	// La carrera se reproduce contra el runner directamente: la venta se
	// inserta, el descuento condicional devuelve false y todo se revierte.
	err := (&fakeTxRunner{salesRepo: f.salesRepo, invRepo: f.items}).RunSale(context.Background(),
		func(salesRepo repository.SalesRepository, invRepo repository.InventoryRepository) error {
			if err := salesRepo.Create(context.Background(), &entity.SaleTransaction{ID: "s1", ItemID: "a", QuantitySold: 99}); err != nil {
				return err
			}
			_, ok, err := invRepo.DecrementQuantity(context.Background(), "a", 99)
			if err != nil {
				return err
			}
			if !ok {
				return &sales.InsufficientStockError{Available: 5, Requested: 99}
			}
			return nil
		})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, f.salesRepo.sales, "la venta insertada debe revertirse con la transacción")
	got, _ := f.items.GetByID(context.Background(), "a")
	assert.Equal(t, 5, got.Quantity)
}

// raceTxRunner descuenta stock justo antes de abrir la transacción, simulando
// una venta concurrente confirmada entre la lectura y el descuento.
type raceTxRunner struct {
	inner   *fakeTxRunner
	invRepo *fakeInventoryRepo
	itemID  string
	raceQty int
}

func (tx *raceTxRunner) RunSale(ctx context.Context, fn func(repository.SalesRepository, repository.InventoryRepository) error) error {
	tx.invRepo.items[tx.itemID].Quantity -= tx.raceQty
	return tx.inner.RunSale(ctx, fn)
}

// Las cantidades reportadas salen del descuento mismo, no de la lectura
// previa: una venta concurrente en medio no las deja desfasadas.
func TestRecordSale_VentaConcurrente_ReportaCantidadesReales(t *testing.T) {
	invRepo := &fakeInventoryRepo{items: map[string]*entity.Item{"a": item("a", 10, 2, 10)}}
	salesRepo := &fakeSalesRepo{}
	tx := &raceTxRunner{
		inner:   &fakeTxRunner{salesRepo: salesRepo, invRepo: invRepo},
		invRepo: invRepo,
		itemID:  "a",
		raceQty: 4,
	}
	reconciler := alerts.NewReconciler(&fakeSettingsRepo{}, invRepo, &fakeAlertRepo{})
	uc := sales.NewUseCase(invRepo, salesRepo, tx, reconciler, audit.NewRecorder(&fakeAuditRepo{}, logger.Nop()))

	out, err := uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: 3})
	require.NoError(t, err)

	// 10 leídos, 4 vendidos en paralelo, 3 vendidos aquí: quedan 3, no 7.
	assert.Equal(t, 6, out.UpdatedInventory.PreviousQuantity)
	assert.Equal(t, 3, out.UpdatedInventory.NewQuantity)
}

// Una venta que deja el stock en o bajo el umbral dispara la alerta.
func TestRecordSale_CruzaElUmbral_GeneraAlerta(t *testing.T) {
	f := newFixture(item("a", 6, 5, 10))

	_, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: 1})
	require.NoError(t, err)

	unresolved, _ := f.alertRepo.ListUnresolved(context.Background())
	require.Len(t, unresolved, 1)
	assert.Equal(t, "a", unresolved[0].ItemID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestDaily_ResumeLasVentasDelDia(t *testing.T) {
	f := newFixture(item("a", 50, 5, 10))

	for i := 0; i < 3; i++ {
		_, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: 2})
		require.NoError(t, err)
	}

	out, err := f.uc.Daily(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Summary.TransactionCount)
	assert.Equal(t, 6, out.Summary.TotalItemsSold)
	assert.Equal(t, "60", out.Summary.TotalRevenue.String())
	assert.Len(t, out.Transactions, 3)
}

func TestDaily_FechaInvalida(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Daily(context.Background(), "31-12-2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummary_RangoInvertido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Summary(context.Background(), "2026-03-10", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToday_Agregado(t *testing.T) {
	f := newFixture(item("a", 50, 5, 10))

	_, err := f.uc.RecordSale(context.Background(), meta(), dto.RecordSaleRequest{ItemID: "a", Quantity: 4})
	require.NoError(t, err)

	out, err := f.uc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.TransactionCount)
	assert.Equal(t, "40", out.TotalRevenue.String())
}
