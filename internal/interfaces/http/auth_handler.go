package http

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/inventario-digital/internal/application/auth"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain"
)

// AuthHandler maneja login, logout, sesión y cambio de contraseña.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	store *session.Store
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, store *session.Store) *AuthHandler {
	return &AuthHandler{uc: uc, store: store}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}

	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountLocked):
			retryAfter := int(math.Ceil(out.RetryAfter.Minutes()))
			return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{
				Code:              "ACCOUNT_LOCKED",
				Message:           "cuenta bloqueada temporalmente por intentos fallidos",
				Locked:            true,
				RetryAfterMinutes: &retryAfter,
			})
		case errors.Is(err, domain.ErrInvalidCredentials):
			resp := dto.ErrorResponse{
				Code:              "INVALID_CREDENTIALS",
				Message:           "credenciales inválidas",
				AttemptsRemaining: &out.AttemptsRemaining,
				Locked:            out.Locked,
			}
			return c.Status(fiber.StatusUnauthorized).JSON(resp)
		case errors.Is(err, domain.ErrAccountInactive):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_INACTIVE", Message: "la cuenta está desactivada"})
		}
		return internalError(c, err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo abrir la sesión"})
	}
	// Identificador de sesión nuevo en cada login (session fixation).
	if err := sess.Regenerate(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo regenerar la sesión"})
	}
	sess.Set(sessionKeyUserID, out.User.ID)
	sess.Set(sessionKeyUsername, out.User.Username)
	sess.Set(sessionKeyEmail, out.User.Email)
	sess.Set(sessionKeyRole, out.User.Role)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo guardar la sesión"})
	}

	return c.JSON(dto.LoginResponse{Success: true, User: *out.User})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		// Ignorar el error: cerrar sesión sobre una sesión ya muerta no es un fallo.
		_ = sess.Destroy()
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "sesión cerrada"})
}

// Session godoc
// @Summary      Estado de la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	userID := sessionUserID(h.store, c)
	if userID == "" {
		return c.JSON(dto.SessionResponse{Authenticated: false})
	}

	user, err := h.uc.GetUser(c.Context(), userID)
	if err != nil {
		return internalError(c, err)
	}
	if user == nil || !user.IsActive {
		return c.JSON(dto.SessionResponse{Authenticated: false})
	}
	return c.JSON(dto.SessionResponse{Authenticated: true, User: user})
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña del usuario autenticado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "currentPassword y newPassword son requeridos"})
	}

	err := h.uc.ChangePassword(c.Context(), actorID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "WRONG_PASSWORD", Message: "la contraseña actual no es correcta"})
		case errors.Is(err, domain.ErrWeakPassword):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "WEAK_PASSWORD",
				Message: "la contraseña no cumple los requisitos",
				Details: []string{"mínimo 8 caracteres", "al menos una mayúscula", "al menos una minúscula", "al menos un dígito"},
			})
		case errors.Is(err, domain.ErrSamePassword):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SAME_PASSWORD", Message: "la nueva contraseña debe ser distinta de la actual"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "contraseña actualizada"})
}
