// Package inventory implementa los casos de uso de inventario y categorías.
// Cada mutación termina reconciliando las alertas (error fatal) y registrando
// auditoría (best-effort), en ese orden.
package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

// UseCase casos de uso de inventario.
type UseCase struct {
	items      repository.InventoryRepository
	categories repository.CategoryRepository
	alertRepo  repository.AlertRepository
	reconciler *alerts.Reconciler
	audit      *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	items repository.InventoryRepository,
	categories repository.CategoryRepository,
	alertRepo repository.AlertRepository,
	reconciler *alerts.Reconciler,
	auditRec *audit.Recorder,
) *UseCase {
	return &UseCase{
		items:      items,
		categories: categories,
		alertRepo:  alertRepo,
		reconciler: reconciler,
		audit:      auditRec,
	}
}

func validateItemRequest(in dto.ItemRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.Threshold < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// resolveCategory resuelve el nombre de categoría a su ID, creándola si no
// existe. Ante un alta concurrente que provoque duplicado, relee y usa la fila
// ganadora.
func (uc *UseCase) resolveCategory(ctx context.Context, name string) (*string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	existing, err := uc.categories.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &existing.ID, nil
	}

	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.categories.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			winner, err := uc.categories.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if winner != nil {
				return &winner.ID, nil
			}
		}
		return nil, err
	}
	return &category.ID, nil
}

// Create da de alta un artículo. La categoría se crea de forma perezosa si el
// nombre no existe todavía.
func (uc *UseCase) Create(ctx context.Context, meta audit.Meta, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validateItemRequest(in); err != nil {
		return nil, err
	}

	categoryID, err := uc.resolveCategory(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	threshold := in.Threshold
	if threshold == 0 {
		threshold = entity.DefaultThreshold
	}

	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		CategoryID:  categoryID,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Threshold:   threshold,
		SKU:         normalizeOptional(in.SKU),
		Barcode:     normalizeOptional(in.Barcode),
		Description: in.Description,
		CreatedBy:   meta.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}

	if err := uc.reconciler.Reconcile(ctx); err != nil {
		return nil, err
	}

	created, err := uc.items.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = item
	}

	resp := ToItemResponse(created)
	uc.audit.Record(ctx, meta, "CREATE", "inventory", &item.ID, nil, resp)
	return resp, nil
}

// GetByID devuelve un artículo o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// List devuelve artículos filtrados con paginación.
func (uc *UseCase) List(ctx context.Context, filters repository.InventoryFilters) (*dto.ItemListResponse, error) {
	// El total se calcula sin paginar; suficiente para el tamaño de inventario
	// que maneja la aplicación.
	unpaged := filters
	unpaged.Limit = 0
	unpaged.Offset = 0
	all, err := uc.items.List(ctx, unpaged)
	if err != nil {
		return nil, err
	}
	total := len(all)

	items := all
	if filters.Limit > 0 {
		items, err = uc.items.List(ctx, filters)
		if err != nil {
			return nil, err
		}
	}

	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *ToItemResponse(item))
	}

	page := 1
	if filters.Limit > 0 {
		page = filters.Offset/filters.Limit + 1
	}
	return &dto.ItemListResponse{
		Items: out,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: filters.Limit,
			Total: total,
		},
	}, nil
}

// Update reemplaza el estado completo del artículo. La categoría anterior se
// conserva cuando la petición no envía nombre de categoría.
func (uc *UseCase) Update(ctx context.Context, meta audit.Meta, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validateItemRequest(in); err != nil {
		return nil, err
	}

	existing, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	before := ToItemResponse(existing)

	categoryID := existing.CategoryID
	if strings.TrimSpace(in.CategoryName) != "" {
		categoryID, err = uc.resolveCategory(ctx, in.CategoryName)
		if err != nil {
			return nil, err
		}
	}

	threshold := in.Threshold
	if threshold == 0 {
		threshold = entity.DefaultThreshold
	}

	updated := &entity.Item{
		ID:          existing.ID,
		Name:        strings.TrimSpace(in.Name),
		CategoryID:  categoryID,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Threshold:   threshold,
		SKU:         normalizeOptional(in.SKU),
		Barcode:     normalizeOptional(in.Barcode),
		Description: in.Description,
		CreatedBy:   existing.CreatedBy,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	if err := uc.items.Update(ctx, updated); err != nil {
		return nil, err
	}

	if err := uc.reconciler.Reconcile(ctx); err != nil {
		return nil, err
	}

	fresh, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		fresh = updated
	}

	resp := ToItemResponse(fresh)
	uc.audit.Record(ctx, meta, "UPDATE", "inventory", &id, before, resp)
	return resp, nil
}

// Delete elimina el artículo y sus alertas asociadas.
func (uc *UseCase) Delete(ctx context.Context, meta audit.Meta, id string) error {
	existing, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	before := ToItemResponse(existing)

	if err := uc.alertRepo.DeleteByItemID(ctx, id); err != nil {
		return err
	}
	if err := uc.items.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.reconciler.Reconcile(ctx); err != nil {
		return err
	}

	uc.audit.Record(ctx, meta, "DELETE", "inventory", &id, before, nil)
	return nil
}

// CreateCategory alta explícita de categoría (además del alta perezosa).
func (uc *UseCase) CreateCategory(ctx context.Context, meta audit.Meta, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	uc.audit.Record(ctx, meta, "CREATE", "category", &category.ID, nil, resp)
	return resp, nil
}

// ListCategories devuelve todas las categorías ordenadas por nombre.
func (uc *UseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *ToCategoryResponse(c))
	}
	return out, nil
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ToItemResponse convierte la entidad al DTO de respuesta.
func ToItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                item.ID,
		Name:              item.Name,
		CategoryID:        item.CategoryID,
		CategoryName:      item.CategoryName,
		Quantity:          item.Quantity,
		Price:             item.Price,
		Threshold:         item.Threshold,
		SKU:               item.SKU,
		Barcode:           item.Barcode,
		Description:       item.Description,
		CreatedBy:         item.CreatedBy,
		CreatedByUsername: item.CreatedByUsername,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ToCategoryResponse convierte la entidad al DTO de respuesta.
func ToCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
