package auth

import (
	"context"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
)

// LoginResult resultado de un intento de login. Cuando hay error, los campos
// de contexto permiten al handler informar intentos restantes o retry-after.
type LoginResult struct {
	User              *dto.UserResponse
	AttemptsRemaining int
	Locked            bool
	RetryAfter        time.Duration
}

// AuthUseCase casos de uso de autenticación: login con bloqueo de cuenta,
// consulta de sesión y cambio de contraseña.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	lockout    *LockoutGuard
	bcryptCost int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, lockout *LockoutGuard, bcryptCost int) *AuthUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{userRepo: userRepo, lockout: lockout, bcryptCost: bcryptCost}
}

// Login verifica credenciales aplicando la política de bloqueo. El contador
// se incrementa tanto con usuario inexistente como con contraseña incorrecta
// (misma respuesta hacia fuera, sin revelar cuál falló) y se limpia
// incondicionalmente en un login exitoso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*LoginResult, error) {
	if locked, retryAfter := uc.lockout.CheckLocked(in.Username); locked {
		return &LoginResult{Locked: true, RetryAfter: retryAfter}, domain.ErrAccountLocked
	}

	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		remaining, locked := uc.lockout.RecordFailure(in.Username)
		return &LoginResult{AttemptsRemaining: remaining, Locked: locked}, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		remaining, locked := uc.lockout.RecordFailure(in.Username)
		return &LoginResult{AttemptsRemaining: remaining, Locked: locked}, domain.ErrInvalidCredentials
	}

	uc.lockout.Clear(in.Username)

	return &LoginResult{User: ToUserResponse(user)}, nil
}

// GetUser devuelve el usuario por ID (para GET /auth/session).
func (uc *AuthUseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return ToUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual y reemplaza el hash. Rechaza
// contraseñas débiles y la reutilización de la contraseña vigente.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	if err := ValidatePasswordStrength(in.NewPassword); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.NewPassword)) == nil {
		return domain.ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.bcryptCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// ValidatePasswordStrength exige mínimo 8 caracteres con mayúscula, minúscula y dígito.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domain.ErrWeakPassword
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.ErrWeakPassword
	}
	return nil
}

// ToUserResponse convierte la entidad al DTO público (sin el hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
