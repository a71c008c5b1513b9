package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/auth"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/domain"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
	"github.com/jhoicas/inventario-digital/pkg/logger"
)

// Credenciales del administrador inicial; debe cambiarlas en el primer uso.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminEmail    = "admin@inventory.com"
)

// UserUseCase gestión de usuarios (operaciones de administrador).
type UserUseCase struct {
	users      repository.UserRepository
	audit      *audit.Recorder
	bcryptCost int
	log        *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, auditRec *audit.Recorder, bcryptCost int, log *logger.Logger) *UserUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserUseCase{users: users, audit: auditRec, bcryptCost: bcryptCost, log: log}
}

// SeedDefaultAdmin crea el usuario admin inicial si no existe todavía.
func (uc *UserUseCase) SeedDefaultAdmin(ctx context.Context) error {
	existing, err := uc.users.GetByUsername(ctx, defaultAdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), uc.bcryptCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, admin); err != nil {
		return err
	}

	uc.log.Warn().Msg("usuario admin inicial creado con la contraseña por defecto; cámbiela de inmediato")
	return nil
}

// Create da de alta un usuario.
func (uc *UserUseCase) Create(ctx context.Context, meta audit.Meta, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if err := auth.ValidatePasswordStrength(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := auth.ToUserResponse(user)
	uc.audit.Record(ctx, meta, "CREATE", "user", &user.ID, nil, resp)
	return resp, nil
}

// Get devuelve un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Update cambia email, rol o estado activo de un usuario. Un administrador no
// puede desactivarse a sí mismo.
func (uc *UserUseCase) Update(ctx context.Context, meta audit.Meta, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	before := auth.ToUserResponse(user)

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Email = email
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		if !*in.IsActive && id == actorID {
			return nil, domain.ErrForbidden
		}
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := auth.ToUserResponse(user)
	uc.audit.Record(ctx, meta, "UPDATE", "user", &id, before, resp)
	return resp, nil
}
