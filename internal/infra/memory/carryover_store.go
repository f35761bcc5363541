package memory

import (
	"context"
	"sync"
)

// CarryOverStore is an in-process implementation of carryover.Store.
type CarryOverStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewCarryOverStore() *CarryOverStore {
	return &CarryOverStore{
		values: make(map[string]string),
	}
}

func (s *CarryOverStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *CarryOverStore) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *CarryOverStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys.
func (s *CarryOverStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
