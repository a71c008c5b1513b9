package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
)

// exposeInternalErrors habilita el detalle del error en las respuestas 500.
// Solo se activa fuera de producción (ver Router); por defecto el cliente
// recibe un mensaje genérico y el detalle queda en el log.
var exposeInternalErrors bool

// internalError registra el error completo y responde 500. El mensaje con el
// detalle interno solo viaja al cliente en modo desarrollo.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")

	msg := "error interno del servidor"
	if exposeInternalErrors {
		msg = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}
