package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/deriv/pkg/domain"
)

// Store implements ports.DerivationStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Derivation
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Derivation),
	}
}

// Save persists the derivation in memory.
func (s *Store) Save(ctx context.Context, key string, d *domain.Derivation) error {
	copied := clone(d)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the derivation from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Derivation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[key]
	if !ok {
		return nil, domain.ErrDerivationNotFound
	}

	// Copy on read so the caller can't mutate store state through the pointer
	return clone(d), nil
}

// Delete removes the derivation.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns stored keys in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func clone(d *domain.Derivation) *domain.Derivation {
	out := *d
	out.Terms = d.Terms.Clone()
	out.Derivative = d.Derivative.Clone()
	return &out
}
