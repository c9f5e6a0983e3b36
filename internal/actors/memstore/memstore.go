// Package memstore holds the in-memory identity store: an unpersisted
// key-value map carrying the authenticated identity between requests.
// Everything in it is lost on restart, which is the intended lifecycle.
package memstore

import "sync"

// Store is a concurrency-safe in-memory key-value store.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores the value under key, replacing any previous value.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes the key. No-op when absent.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
