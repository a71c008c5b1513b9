package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
)

// Claves de fiber.Ctx.Locals pobladas por RequireAuth.
const (
	localUserID   = "user_id"
	localUsername = "username"
	localRole     = "role"
)

// RequireAuth exige una sesión autenticada y publica la identidad en Locals.
func RequireAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		userID, ok := sess.Get(sessionKeyUserID).(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}

		c.Locals(localUserID, userID)
		if username, ok := sess.Get(sessionKeyUsername).(string); ok {
			c.Locals(localUsername, username)
		}
		if role, ok := sess.Get(sessionKeyRole).(string); ok {
			c.Locals(localRole, role)
		}
		return c.Next()
	}
}

// RequireRole exige uno de los roles indicados; debe ir después de RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(localRole).(string)
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permisos insuficientes"})
		}
		return c.Next()
	}
}

// actorID devuelve el ID del usuario autenticado, o "" si no hay.
func actorID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// actorUsername devuelve el username del usuario autenticado.
func actorUsername(c *fiber.Ctx) string {
	name, _ := c.Locals(localUsername).(string)
	return name
}

// auditMeta arma los metadatos de auditoría desde la petición.
func auditMeta(c *fiber.Ctx) audit.Meta {
	meta := audit.Meta{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
	if id := actorID(c); id != "" {
		meta.UserID = &id
	}
	return meta
}
