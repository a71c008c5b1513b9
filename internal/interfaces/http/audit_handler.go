package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

// AuditHandler consulta del registro de auditoría (solo administradores).
type AuditHandler struct {
	repo repository.AuditLogRepository
}

// NewAuditHandler construye el handler de auditoría.
func NewAuditHandler(repo repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List godoc
// @Summary      Consultar el registro de auditoría
// @Tags         audit
// @Produce      json
// @Param        user_id      query  string  false  "filtrar por usuario"
// @Param        entity_type  query  string  false  "filtrar por tipo de entidad"
// @Param        entity_id    query  string  false  "filtrar por entidad"
// @Param        limit        query  int     false  "máximo de entradas (por defecto 100)"
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filters := repository.AuditFilters{
		UserID:     c.Query("user_id"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filters.Limit = limit
	}

	logs, err := h.repo.List(c.Context(), filters)
	if err != nil {
		return internalError(c, err)
	}

	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toAuditLogResponse(l))
	}
	return c.JSON(out)
}

func toAuditLogResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		Username:   l.Username,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		OldValues:  l.OldValues,
		NewValues:  l.NewValues,
		IPAddress:  l.IPAddress,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}
}
