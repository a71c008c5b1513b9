package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/application/usecase"
	"github.com/jhoicas/inventario-digital/internal/domain"
)

// ExportHandler exportación/importación de datos, reporte PDF y códigos QR.
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

// NewExportHandler construye el handler de exportación.
func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar snapshot completo de datos
// @Tags         export
// @Produce      json
// @Success      200  {object}  dto.ExportResponse
// @Router       /api/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.Export(c.Context(), actorUsername(c))
	if err != nil {
		return internalError(c, err)
	}
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="inventario-%s.json"`, time.Now().Format("2006-01-02")))
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Reporte PDF del inventario
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/export/pdf [get]
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ExportPDF(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="inventario-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(pdf)
}

// Import godoc
// @Summary      Importar snapshot de datos
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "snapshot"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *ExportHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	out, err := h.uc.Import(c.Context(), auditMeta(c), in)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ItemQR godoc
// @Summary      Código QR de un artículo (PNG)
// @Tags         export
// @Produce      image/png
// @Param        id    path   string  true   "ID del artículo"
// @Param        size  query  int     false  "lado del PNG en píxeles (por defecto 300)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/qr [get]
func (h *ExportHandler) ItemQR(c *fiber.Ctx) error {
	png, err := h.uc.ItemQR(c.Context(), c.Params("id"), c.QueryInt("size"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el artículo no existe"})
		}
		return internalError(c, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
