package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/application/sales"
	"github.com/jhoicas/inventario-digital/internal/domain"
)

// SalesHandler maneja el registro y consulta de ventas.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "item_id, quantity"
// @Success      201   {object}  dto.RecordSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	out, err := h.uc.RecordSale(c.Context(), auditMeta(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el artículo no existe"})
		case errors.Is(err, domain.ErrInsufficientStock):
			resp := dto.ErrorResponse{
				Code:      "INSUFFICIENT_STOCK",
				Message:   "stock insuficiente para la venta",
				Requested: &in.Quantity,
			}
			var stockErr *sales.InsufficientStockError
			if errors.As(err, &stockErr) {
				resp.Available = &stockErr.Available
				resp.Requested = &stockErr.Requested
			}
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Daily godoc
// @Summary      Ventas de un día
// @Tags         sales
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.DailySalesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/daily [get]
func (h *SalesHandler) Daily(c *fiber.Ctx) error {
	out, err := h.uc.Daily(c.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de ventas por rango de fechas
// @Tags         sales
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200  {array}  dto.SummaryRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/summary [get]
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Today godoc
// @Summary      Agregado de ventas del día
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.TodaySummaryResponse
// @Router       /api/sales/today [get]
func (h *SalesHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Today(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
