package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-digital/internal/application/usecase"
)

// StatsHandler métricas del dashboard.
type StatsHandler struct {
	uc *usecase.StatsUseCase
}

// NewStatsHandler construye el handler de estadísticas.
func NewStatsHandler(uc *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Métricas agregadas del inventario
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.DashboardStats
// @Router       /api/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
