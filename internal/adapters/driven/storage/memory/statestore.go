package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

type stateKey struct {
	kind domain.RecordKind
	id   string
}

// StateStore is an in-memory implementation of driven.StateStore.
type StateStore struct {
	mu     sync.RWMutex
	states map[stateKey]domain.Record
	order  []stateKey
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[stateKey]domain.Record),
	}
}

// Save stores or updates a state, assigning an ID when it has none.
func (s *StateStore) Save(_ context.Context, rec domain.Record) error {
	if rec == nil {
		return fmt.Errorf("%w: nil state", domain.ErrInvalidInput)
	}
	if rec.ID() == "" {
		rec.SetID(uuid.NewString())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := stateKey{kind: rec.Kind(), id: rec.ID()}
	if _, exists := s.states[key]; !exists {
		s.order = append(s.order, key)
	}
	s.states[key] = rec
	return nil
}

// Get retrieves a state by kind and ID.
func (s *StateStore) Get(_ context.Context, kind domain.RecordKind, id string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.states[stateKey{kind: kind, id: id}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// List returns all states of a kind in insertion order.
func (s *StateStore) List(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	return s.Search(ctx, kind, nil)
}

// Search returns the states of a kind that satisfy filter. A nil filter matches all.
func (s *StateStore) Search(_ context.Context, kind domain.RecordKind, filter domain.RecordFilter) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Record, 0)
	for _, key := range s.order {
		if key.kind != kind {
			continue
		}
		rec := s.states[key]
		if filter == nil || filter.Match(rec) {
			result = append(result, rec)
		}
	}
	return result, nil
}

// Delete removes a state. Deleting a missing state is not an error.
func (s *StateStore) Delete(_ context.Context, kind domain.RecordKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := stateKey{kind: kind, id: id}
	if _, ok := s.states[key]; !ok {
		return nil
	}
	delete(s.states, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
