package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
)

// AlertHandler maneja las alertas de stock bajo.
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler de alertas.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas sin resolver
// @Tags         alerts
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Recalcular las alertas contra el inventario actual
// @Tags         alerts
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/refresh [post]
func (h *AlertHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.Refresh(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Resolver todas las alertas pendientes
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  dto.ClearAlertsResponse
// @Router       /api/alerts [delete]
func (h *AlertHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.ClearAll(c.Context(), auditMeta(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
