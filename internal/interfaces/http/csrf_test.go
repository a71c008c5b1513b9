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

// buildCSRFApp monta una app mínima con el middleware CSRF real:
//   - POST /api/auth/login crea la sesión (exento de CSRF)
//   - GET  /api/auth/csrf-token emite tokens
//   - POST /api/inventory es la mutación protegida
func buildCSRFApp() (*fiber.App, *session.Store) {
	cfg := &config.Config{}
	cfg.App.Env = "development"
	cfg.Session.TTLHours = 1

	store := apphttp.NewSessionStore(cfg)
	app := fiber.New()

	app.Use(apphttp.CSRFMiddleware(store))

	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set("user_id", "00000000-0000-0000-0000-000000000001")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	})
	app.Get("/api/auth/csrf-token", apphttp.IssueCSRFToken(store))
	app.Post("/api/inventory", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/inventory", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	return app, store
}

// login abre sesión y devuelve la cookie de sesión.
func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "inventario_sid" {
			return c
		}
	}
	t.Fatal("el login debe establecer la cookie de sesión")
	return nil
}

// fetchToken pide un token CSRF nuevo usando la cookie de sesión.
func fetchToken(t *testing.T, app *fiber.App, cookie *http.Cookie) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/csrf-token", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.CSRFToken)
	return body.CSRFToken
}

// mutate lanza la mutación protegida con el token indicado.
func mutate(t *testing.T, app *fiber.App, cookie *http.Cookie, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/inventory", nil)
	req.AddCookie(cookie)
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CSRF
// ──────────────────────────────────────────────────────────────────────────────

func TestCSRF_TokenValido_PermiteLaMutacion(t *testing.T) {
	app, _ := buildCSRFApp()
	cookie := login(t, app)
	token := fetchToken(t, app, cookie)

	assert.Equal(t, http.StatusOK, mutate(t, app, cookie, token))
}

// Un token solo vale una vez: la segunda mutación con el mismo token falla.
func TestCSRF_TokenDeUnSoloUso(t *testing.T) {
	app, _ := buildCSRFApp()
	cookie := login(t, app)
	token := fetchToken(t, app, cookie)

	assert.Equal(t, http.StatusOK, mutate(t, app, cookie, token))
	assert.Equal(t, http.StatusForbidden, mutate(t, app, cookie, token),
		"el token consumido no debe valer una segunda vez")
}

func TestCSRF_SinToken_Rechaza(t *testing.T) {
	app, _ := buildCSRFApp()
	cookie := login(t, app)

	assert.Equal(t, http.StatusForbidden, mutate(t, app, cookie, ""))
}

func TestCSRF_TokenInventado_Rechaza(t *testing.T) {
	app, _ := buildCSRFApp()
	cookie := login(t, app)

	assert.Equal(t, http.StatusForbidden, mutate(t, app, cookie, "deadbeef"))
}

// La lista de tokens está acotada: emitir más del tope desecha los más
// antiguos, que dejan de valer.
func TestCSRF_ListaAcotada_DesechaElMasAntiguo(t *testing.T) {
	app, _ := buildCSRFApp()
	cookie := login(t, app)

	first := fetchToken(t, app, cookie)
	var last string
	for i := 0; i < 10; i++ {
		last = fetchToken(t, app, cookie)
	}

	assert.Equal(t, http.StatusForbidden, mutate(t, app, cookie, first),
		"el token más antiguo debe haber sido desechado al superar el tope")
	assert.Equal(t, http.StatusOK, mutate(t, app, cookie, last),
		"el token más reciente sigue siendo válido")
}

// Las lecturas y el login no exigen token.
func TestCSRF_LecturasYLoginExentos(t *testing.T) {
	app, _ := buildCSRFApp()

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "GET no exige token CSRF")

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el login está exento de CSRF")
}

// Los tokens de una sesión no valen en otra.
func TestCSRF_TokenDeOtraSesion_Rechaza(t *testing.T) {
	app, _ := buildCSRFApp()
	cookieA := login(t, app)
	cookieB := login(t, app)
	tokenA := fetchToken(t, app, cookieA)

	assert.Equal(t, http.StatusForbidden, mutate(t, app, cookieB, tokenA))
}
