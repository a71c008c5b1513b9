package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest cuerpo de creación/actualización de un artículo. La categoría
// llega por nombre y se resuelve (creándola si no existe) en el caso de uso.
// La actualización reemplaza el estado completo: el único campo que se
// arrastra del estado anterior es la categoría cuando no se envía.
type ItemRequest struct {
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Threshold    int             `json:"threshold"`
	SKU          *string         `json:"sku"`
	Barcode      *string         `json:"barcode"`
	Description  string          `json:"description"`
}

// ItemResponse representación de un artículo con campos denormalizados.
type ItemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CategoryID        *string         `json:"category_id"`
	CategoryName      *string         `json:"category_name"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	Threshold         int             `json:"threshold"`
	SKU               *string         `json:"sku"`
	Barcode           *string         `json:"barcode"`
	Description       string          `json:"description"`
	CreatedBy         *string         `json:"created_by"`
	CreatedByUsername *string         `json:"created_by_username"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest alta explícita de categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
