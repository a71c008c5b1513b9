package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/inventario-digital/pkg/config"
)

// Claves usadas dentro de la sesión.
const (
	sessionKeyUserID     = "user_id"
	sessionKeyUsername   = "username"
	sessionKeyEmail      = "email"
	sessionKeyRole       = "role"
	sessionKeyCSRFTokens = "csrf_tokens"
)

// NewSessionStore crea el almacén de sesiones con cookie HttpOnly. En
// producción la cookie solo viaja por HTTPS.
func NewSessionStore(cfg *config.Config) *session.Store {
	store := session.New(session.Config{
		KeyLookup:      "cookie:inventario_sid",
		Expiration:     cfg.Session.TTL(),
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   cfg.App.IsProduction(),
	})
	// La lista de tokens CSRF se guarda en la sesión; gob necesita el tipo registrado.
	store.RegisterType([]string{})
	return store
}

// sessionUserID devuelve el user_id de la sesión, o "" si no hay sesión activa.
func sessionUserID(store *session.Store, c *fiber.Ctx) string {
	sess, err := store.Get(c)
	if err != nil {
		return ""
	}
	if id, ok := sess.Get(sessionKeyUserID).(string); ok {
		return id
	}
	return ""
}
