package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-digital/internal/application/auth"
	"github.com/jhoicas/inventario-digital/internal/infrastructure/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testMaxAttempts = 5
	testWindow      = 15 * time.Minute
)

// fakeClock reloj controlable para los tests de ventana.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newGuard() (*auth.LockoutGuard, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	guard := auth.NewLockoutGuard(memstore.NewAttemptStore(), testMaxAttempts, testWindow, clock.Now)
	return guard, clock
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LockoutGuard
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: con menos de 5 fallos la cuenta no se bloquea.
func TestLockout_MenosDeCincoFallos_NoBloquea(t *testing.T) {
	guard, _ := newGuard()

	for i := 0; i < testMaxAttempts-1; i++ {
		remaining, locked := guard.RecordFailure("carlos")
		assert.False(t, locked, "no debe bloquearse antes del quinto fallo")
		assert.Equal(t, testMaxAttempts-i-1, remaining)
	}

	locked, _ := guard.CheckLocked("carlos")
	assert.False(t, locked)
}

// Caso 2: el quinto fallo bloquea la cuenta dentro de la ventana.
func TestLockout_QuintoFallo_Bloquea(t *testing.T) {
	guard, _ := newGuard()

	var locked bool
	for i := 0; i < testMaxAttempts; i++ {
		_, locked = guard.RecordFailure("carlos")
	}
	assert.True(t, locked, "el quinto fallo debe bloquear la cuenta")

	locked, retryAfter := guard.CheckLocked("carlos")
	assert.True(t, locked)
	assert.Equal(t, testWindow, retryAfter, "recién bloqueada, falta la ventana completa")
}

// Caso 3: mientras dura el bloqueo, ni la contraseña correcta entra. El guard
// se consulta antes de verificar credenciales, así que CheckLocked sigue
// devolviendo true hasta que expire la ventana.
func TestLockout_BloqueoVigente_SigueBloqueado(t *testing.T) {
	guard, clock := newGuard()

	for i := 0; i < testMaxAttempts; i++ {
		guard.RecordFailure("carlos")
	}

	clock.Advance(10 * time.Minute)
	locked, retryAfter := guard.CheckLocked("carlos")
	assert.True(t, locked, "a los 10 minutos el bloqueo sigue vigente")
	assert.Equal(t, 5*time.Minute, retryAfter)
}

// Caso 4: pasada la ventana completa desde el último fallo, el bloqueo expira
// y el contador se reinicia.
func TestLockout_VentanaExpirada_Desbloquea(t *testing.T) {
	guard, clock := newGuard()

	for i := 0; i < testMaxAttempts; i++ {
		guard.RecordFailure("carlos")
	}

	clock.Advance(testWindow + time.Second)
	locked, _ := guard.CheckLocked("carlos")
	assert.False(t, locked, "pasada la ventana el bloqueo expira")

	// El contador se reinició: un fallo nuevo arranca de cero.
	remaining, locked := guard.RecordFailure("carlos")
	assert.False(t, locked)
	assert.Equal(t, testMaxAttempts-1, remaining)
}

// Caso 5: los contadores son por identidad; bloquear una no afecta a otra.
func TestLockout_IdentidadesIndependientes(t *testing.T) {
	guard, _ := newGuard()

	for i := 0; i < testMaxAttempts; i++ {
		guard.RecordFailure("carlos")
	}

	locked, _ := guard.CheckLocked("maria")
	assert.False(t, locked, "el bloqueo de carlos no afecta a maria")
}

// Caso 6: Clear limpia el contador (login exitoso).
func TestLockout_Clear_ReiniciaContador(t *testing.T) {
	guard, _ := newGuard()

	for i := 0; i < testMaxAttempts-1; i++ {
		guard.RecordFailure("carlos")
	}
	guard.Clear("carlos")

	remaining, locked := guard.RecordFailure("carlos")
	assert.False(t, locked)
	assert.Equal(t, testMaxAttempts-1, remaining, "tras Clear el contador arranca de cero")
}
