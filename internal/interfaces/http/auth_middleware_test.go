package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/inventario-digital/internal/interfaces/http"
	"github.com/jhoicas/inventario-digital/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAuthApp construye una app mínima con:
//   - POST /login que abre sesión con el rol indicado en el query
//   - GET /protected tras RequireAuth (+ RequireRole si se pasan roles)
func buildAuthApp(allowedRoles ...string) (*fiber.App, *session.Store) {
	cfg := &config.Config{}
	cfg.App.Env = "development"
	cfg.Session.TTLHours = 1
	store := apphttp.NewSessionStore(cfg)

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set("user_id", "00000000-0000-0000-0000-000000000001")
		sess.Set("username", "carlos")
		sess.Set("role", c.Query("role", "user"))
		if err := sess.Save(); err != nil {
			return err
		}
		return c.SendStatus(http.StatusOK)
	})

	handlers := []fiber.Handler{apphttp.RequireAuth(store)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "user_id": c.Locals("user_id")})
	})
	app.Get("/protected", handlers...)
	return app, store
}

func loginAs(t *testing.T, app *fiber.App, role string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login?role="+role, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == "inventario_sid" {
			return c
		}
	}
	t.Fatal("falta la cookie de sesión")
	return nil
}

func getProtected(t *testing.T, app *fiber.App, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAuth / RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: con sesión válida el handler recibe la identidad en Locals.
func TestRequireAuth_SesionValida(t *testing.T) {
	app, _ := buildAuthApp()
	cookie := loginAs(t, app, "user")

	resp := getProtected(t, app, cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", body["user_id"])
}

// Caso 2: sin cookie de sesión → HTTP 401.
func TestRequireAuth_SinSesion_Retorna401(t *testing.T) {
	app, _ := buildAuthApp()

	resp := getProtected(t, app, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: admin accede a ruta restringida a admin → HTTP 200.
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app, _ := buildAuthApp("admin")
	cookie := loginAs(t, app, "admin")

	resp := getProtected(t, app, cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")
}

// Caso 4: usuario regular bloqueado en ruta admin → HTTP 403.
func TestRequireRole_UsuarioBloqueadoEnRutaAdmin(t *testing.T) {
	app, _ := buildAuthApp("admin")
	cookie := loginAs(t, app, "user")

	resp := getProtected(t, app, cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"user no debe poder acceder a ruta restringida a admin")
}

// Caso 5: multi-rol, manager entra en ruta admin-o-manager → HTTP 200.
func TestRequireRole_ManagerAccedeRutaMultiRol(t *testing.T) {
	app, _ := buildAuthApp("admin", "manager")
	cookie := loginAs(t, app, "manager")

	resp := getProtected(t, app, cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
