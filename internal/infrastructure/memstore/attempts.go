// Package memstore guarda contadores de intentos de login en memoria del
// proceso. No sobrevive a un reinicio y solo es correcto con una instancia:
// un despliegue multi-instancia debe sustituirlo por un store compartido
// implementando el mismo puerto auth.AttemptStore.
package memstore

import (
	"sync"
	"time"
)

type attempt struct {
	count int
	last  time.Time
}

// AttemptStore contadores por identidad protegidos con mutex.
type AttemptStore struct {
	mu       sync.Mutex
	attempts map[string]attempt
}

// NewAttemptStore construye el store vacío.
func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[string]attempt)}
}

// Get devuelve el contador y el instante del último fallo para la identidad.
func (s *AttemptStore) Get(key string) (count int, last time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[key]
	return a.count, a.last, ok
}

// Put registra el contador y el instante del último fallo.
func (s *AttemptStore) Put(key string, count int, last time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[key] = attempt{count: count, last: last}
}

// Delete limpia el contador de la identidad.
func (s *AttemptStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, key)
}
