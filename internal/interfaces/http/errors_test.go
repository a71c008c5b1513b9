package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests respuesta de error interno
// ──────────────────────────────────────────────────────────────────────────────

// hitBoom monta una ruta que falla con el error dado y devuelve el cuerpo del 500.
func hitBoom(t *testing.T, cause error) dto.ErrorResponse {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return internalError(c, cause)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func setExposeInternalErrors(t *testing.T, v bool) {
	t.Helper()
	prev := exposeInternalErrors
	exposeInternalErrors = v
	t.Cleanup(func() { exposeInternalErrors = prev })
}

// Caso 1: en producción el cliente recibe un mensaje genérico, nunca el
// detalle del repositorio o del driver.
func TestInternalError_Produccion_NoFiltraElDetalle(t *testing.T) {
	setExposeInternalErrors(t, false)
	cause := errors.New(`get item: ERROR: column "detalle_interno" does not exist (SQLSTATE 42703)`)

	body := hitBoom(t, cause)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno del servidor", body.Message)
	assert.NotContains(t, body.Message, "detalle_interno",
		"el detalle interno no debe viajar al cliente")
	assert.NotContains(t, body.Message, "SQLSTATE")
}

// Caso 2: en desarrollo el detalle sí se incluye para facilitar el debug.
func TestInternalError_Desarrollo_IncluyeElDetalle(t *testing.T) {
	setExposeInternalErrors(t, true)
	cause := errors.New(`get item: ERROR: column "detalle_interno" does not exist (SQLSTATE 42703)`)

	body := hitBoom(t, cause)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Contains(t, body.Message, "detalle_interno")
}
