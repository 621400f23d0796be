package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryIdempotencyStore alternativa de proceso único cuando REDIS_ADDR no está configurado.
// Las claves expiradas se descartan al reservar.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewInMemoryIdempotencyStore construye el store.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{entries: make(map[string]time.Time), now: time.Now}
}

// Reserve marca la clave; devuelve false si ya estaba reservada y no expiró.
func (s *InMemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.entries {
		if now.After(exp) {
			delete(s.entries, k)
		}
	}
	if _, ok := s.entries[key]; ok {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// Release libera la clave.
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
