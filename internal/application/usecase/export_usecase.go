package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/application/inventory"
	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
	"github.com/jhoicas/inventario-digital/pkg/logger"
)

// ReportGenerator puerto para el reporte PDF del inventario.
type ReportGenerator interface {
	Generate(ctx context.Context, items []*entity.Item, currency string) ([]byte, error)
}

// ItemQRGenerator puerto para el código QR de un artículo. size en píxeles;
// la implementación aplica su tamaño por defecto si viene fuera de rango.
type ItemQRGenerator interface {
	ForItem(item *entity.Item, size int) ([]byte, error)
}

// ExportUseCase exportación e importación del snapshot completo de datos,
// reporte PDF y códigos QR.
type ExportUseCase struct {
	items      repository.InventoryRepository
	categories repository.CategoryRepository
	alertRepo  repository.AlertRepository
	inventory  *inventory.UseCase
	settings   *SettingsUseCase
	reconciler *alerts.Reconciler
	audit      *audit.Recorder
	report     ReportGenerator
	qr         ItemQRGenerator
	log        *logger.Logger
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	items repository.InventoryRepository,
	categories repository.CategoryRepository,
	alertRepo repository.AlertRepository,
	inventoryUC *inventory.UseCase,
	settingsUC *SettingsUseCase,
	reconciler *alerts.Reconciler,
	auditRec *audit.Recorder,
	report ReportGenerator,
	qrGen ItemQRGenerator,
	log *logger.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		items:      items,
		categories: categories,
		alertRepo:  alertRepo,
		inventory:  inventoryUC,
		settings:   settingsUC,
		reconciler: reconciler,
		audit:      auditRec,
		report:     report,
		qr:         qrGen,
		log:        log,
	}
}

// ExportPDF genera el reporte PDF del inventario completo, usando la moneda
// configurada para los montos.
func (uc *ExportUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	items, err := uc.items.List(ctx, repository.InventoryFilters{})
	if err != nil {
		return nil, err
	}
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return uc.report.Generate(ctx, items, settings.Currency)
}

// ItemQR genera el PNG del código QR de un artículo.
func (uc *ExportUseCase) ItemQR(ctx context.Context, id string, size int) ([]byte, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.qr.ForItem(item, size)
}

// Export arma el snapshot completo: inventario, alertas pendientes,
// configuración y categorías.
func (uc *ExportUseCase) Export(ctx context.Context, exportedBy string) (*dto.ExportResponse, error) {
	items, err := uc.items.List(ctx, repository.InventoryFilters{})
	if err != nil {
		return nil, err
	}
	unresolved, err := uc.alertRepo.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.inventory.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	itemsOut := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		itemsOut = append(itemsOut, *inventory.ToItemResponse(item))
	}
	alertsOut := make([]dto.AlertResponse, 0, len(unresolved))
	for _, a := range unresolved {
		alertsOut = append(alertsOut, alerts.ToAlertResponse(a))
	}

	return &dto.ExportResponse{
		Inventory:  itemsOut,
		Alerts:     alertsOut,
		Settings:   *settings,
		Categories: categories,
		ExportDate: time.Now(),
		ExportedBy: exportedBy,
	}, nil
}

// Import carga un snapshot: primero las categorías, luego el inventario y por
// último la configuración si viene incluida. Las entradas duplicadas se saltan
// sin abortar la importación; el resultado cuenta solo lo efectivamente
// importado. La reconciliación final deja las alertas al día con el inventario
// resultante.
func (uc *ExportUseCase) Import(ctx context.Context, meta audit.Meta, in dto.ImportRequest) (*dto.ImportResponse, error) {
	var counts dto.ImportedCounts

	for _, c := range in.Categories {
		if _, err := uc.inventory.CreateCategory(ctx, meta, c); err != nil {
			if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) {
				uc.log.Debug().Str("category", c.Name).Msg("categoría saltada en la importación")
				continue
			}
			return nil, err
		}
		counts.Categories++
	}

	for _, item := range in.Inventory {
		if _, err := uc.inventory.Create(ctx, meta, item); err != nil {
			if errors.Is(err, domain.ErrSKUExists) || errors.Is(err, domain.ErrInvalidInput) {
				uc.log.Debug().Str("item", item.Name).Msg("artículo saltado en la importación")
				continue
			}
			return nil, err
		}
		counts.Inventory++
	}

	if in.Settings != nil {
		if _, err := uc.settings.Update(ctx, meta, *in.Settings); err != nil {
			return nil, err
		}
	}

	if err := uc.reconciler.Reconcile(ctx); err != nil {
		return nil, err
	}

	resp := &dto.ImportResponse{
		Message:  "Importación completada",
		Imported: counts,
	}
	uc.audit.Record(ctx, meta, "IMPORT", "data", nil, nil, resp)
	return resp, nil
}
