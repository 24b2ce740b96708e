// Package memory provides an in-process DocumentStore, used for tests
// and for hosts that keep condition documents inside their own project
// model.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.ConditionExpression
	has  map[string]bool
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.ConditionExpression),
		has:  make(map[string]bool),
	}
}

// Save persists the condition in memory. The tree is deep-copied so the
// store can never observe later edits to the caller's value.
func (s *Store) Save(ctx context.Context, id string, expr *domain.ConditionExpression) error {
	copied := condition.Clone(expr)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	s.has[id] = true
	return nil
}

// Load retrieves the condition from memory. A copy is returned so the
// caller cannot mutate stored state through the pointer.
func (s *Store) Load(ctx context.Context, id string) (*domain.ConditionExpression, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has[id] {
		return nil, domain.ErrDocumentNotFound
	}
	return condition.Clone(s.data[id]), nil
}

// Delete removes the condition.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	delete(s.has, id)
	return nil
}

// List returns the stored owner ids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.has))
	for id := range s.has {
		ids = append(ids, id)
	}
	return ids, nil
}
