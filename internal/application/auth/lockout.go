package auth

import "time"

// AttemptStore puerto para los contadores de intentos fallidos por identidad.
// La implementación en memoria (memstore) solo es válida con una instancia;
// un despliegue multi-instancia debe usar un store compartido.
type AttemptStore interface {
	Get(key string) (count int, last time.Time, ok bool)
	Put(key string, count int, last time.Time)
	Delete(key string)
}

// LockoutGuard aplica la política de bloqueo temporal de cuentas: una
// identidad queda bloqueada al acumular maxAttempts fallos dentro de la
// ventana; el bloqueo expira solo cuando pasa la ventana completa desde el
// último fallo, y entonces el contador se reinicia en el siguiente chequeo.
type LockoutGuard struct {
	store       AttemptStore
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewLockoutGuard construye el guard. now es inyectable para tests; nil usa time.Now.
func NewLockoutGuard(store AttemptStore, maxAttempts int, window time.Duration, now func() time.Time) *LockoutGuard {
	if now == nil {
		now = time.Now
	}
	return &LockoutGuard{store: store, maxAttempts: maxAttempts, window: window, now: now}
}

// CheckLocked indica si la identidad está bloqueada y cuánto falta para que
// expire el bloqueo. Si la ventana ya pasó, reinicia el contador.
func (g *LockoutGuard) CheckLocked(identity string) (locked bool, retryAfter time.Duration) {
	count, last, ok := g.store.Get(identity)
	if !ok || count < g.maxAttempts {
		return false, 0
	}
	elapsed := g.now().Sub(last)
	if elapsed < g.window {
		return true, g.window - elapsed
	}
	// Ventana expirada: el bloqueo nunca se extiende más allá de la ventana fija.
	g.store.Delete(identity)
	return false, 0
}

// RecordFailure registra un intento fallido y devuelve los intentos restantes
// y si la identidad quedó bloqueada.
func (g *LockoutGuard) RecordFailure(identity string) (remaining int, locked bool) {
	count, _, _ := g.store.Get(identity)
	count++
	g.store.Put(identity, count, g.now())

	remaining = g.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, count >= g.maxAttempts
}

// Clear limpia el contador incondicionalmente (login exitoso).
func (g *LockoutGuard) Clear(identity string) {
	g.store.Delete(identity)
}

// Window devuelve la ventana de bloqueo configurada.
func (g *LockoutGuard) Window() time.Duration {
	return g.window
}
