package http

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
)

// Cada sesión mantiene una lista acotada de tokens CSRF de un solo uso: al
// validar uno se consume, y al emitir más allá del tope se desecha el más
// antiguo. El cliente pide un token antes de cada mutación.
const maxCSRFTokens = 10

func newCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func sessionCSRFTokens(sess *session.Session) []string {
	if tokens, ok := sess.Get(sessionKeyCSRFTokens).([]string); ok {
		return tokens
	}
	return nil
}

// IssueCSRFToken emite un token nuevo y lo agrega a la lista de la sesión.
func IssueCSRFToken(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo abrir la sesión"})
		}

		token, err := newCSRFToken()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el token"})
		}

		tokens := append(sessionCSRFTokens(sess), token)
		if len(tokens) > maxCSRFTokens {
			tokens = tokens[len(tokens)-maxCSRFTokens:]
		}
		sess.Set(sessionKeyCSRFTokens, tokens)
		if err := sess.Save(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo guardar la sesión"})
		}

		return c.JSON(dto.CSRFTokenResponse{Success: true, CSRFToken: token})
	}
}

// CSRFMiddleware exige un token válido en toda mutación. Los métodos de solo
// lectura y el login/logout quedan exentos (en el login todavía no hay sesión
// de la cual emitir tokens).
func CSRFMiddleware(store *session.Store) fiber.Handler {
	exempt := map[string]bool{
		"/api/auth/login":  true,
		"/api/auth/logout": true,
	}

	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if exempt[c.Path()] {
			return c.Next()
		}

		token := c.Get("X-CSRF-Token")
		if token == "" {
			token = c.Get("CSRF-Token")
		}
		if token == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "CSRF_MISSING", Message: "falta el token CSRF"})
		}

		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "CSRF_INVALID", Message: "token CSRF inválido"})
		}

		tokens := sessionCSRFTokens(sess)
		idx := -1
		for i, t := range tokens {
			if t == token {
				idx = i
				break
			}
		}
		if idx < 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "CSRF_INVALID", Message: "token CSRF inválido"})
		}

		// Un solo uso: el token se consume antes de ejecutar la operación.
		tokens = append(tokens[:idx], tokens[idx+1:]...)
		sess.Set(sessionKeyCSRFTokens, tokens)
		if err := sess.Save(); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "CSRF_INVALID", Message: "token CSRF inválido"})
		}

		return c.Next()
	}
}
