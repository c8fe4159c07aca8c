package pending

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string // scope -> key -> value
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]string),
	}
}

// Get returns the value stored under key for scope.
func (s *MemoryStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[scope][key]
	return val, ok, nil
}

// Set stores value under key for scope, replacing any previous value.
func (s *MemoryStore) Set(ctx context.Context, scope, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.data[scope]
	if !ok {
		entries = make(map[string]string)
		s.data[scope] = entries
	}
	entries[key] = value
	return nil
}

// Remove deletes key for scope.
func (s *MemoryStore) Remove(ctx context.Context, scope, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.data[scope]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(s.data, scope)
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
