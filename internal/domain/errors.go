package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUsernameExists     = errors.New("el nombre de usuario ya está registrado")
	ErrEmailExists        = errors.New("el email ya está registrado")
	ErrSKUExists          = errors.New("el SKU ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountInactive    = errors.New("cuenta desactivada")
	ErrAccountLocked      = errors.New("cuenta bloqueada temporalmente")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrWeakPassword       = errors.New("la contraseña no cumple los requisitos de seguridad")
	ErrSamePassword       = errors.New("la nueva contraseña debe ser distinta a la actual")
	ErrInvalidCredentials = errors.New("usuario o contraseña inválidos")
)
