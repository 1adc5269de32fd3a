package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

// Ensure ColumnMappingStore implements the interface.
var _ driven.ColumnMappingStore = (*ColumnMappingStore)(nil)

// ColumnMappingStore is an in-memory implementation of driven.ColumnMappingStore.
type ColumnMappingStore struct {
	mu       sync.RWMutex
	mappings map[domain.RecordKind]domain.ColumnMapping
}

// NewColumnMappingStore creates a new in-memory column mapping store.
func NewColumnMappingStore() *ColumnMappingStore {
	return &ColumnMappingStore{
		mappings: make(map[domain.RecordKind]domain.ColumnMapping),
	}
}

// Save stores every entry of mapping.
func (s *ColumnMappingStore) Save(_ context.Context, kind domain.RecordKind, mapping domain.ColumnMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, ok := s.mappings[kind]
	if !ok {
		saved = make(domain.ColumnMapping, len(mapping))
		s.mappings[kind] = saved
	}
	for raw, entry := range mapping {
		saved[raw] = entry
	}
	return nil
}

// Get returns the saved entry for a raw column.
func (s *ColumnMappingStore) Get(_ context.Context, kind domain.RecordKind, raw string) (domain.MappingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.mappings[kind][raw]
	if !ok {
		return domain.MappingEntry{}, domain.ErrNotFound
	}
	return entry, nil
}

// List returns a copy of every saved entry of a kind.
func (s *ColumnMappingStore) List(_ context.Context, kind domain.RecordKind) (domain.ColumnMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.ColumnMapping, len(s.mappings[kind]))
	for raw, entry := range s.mappings[kind] {
		out[raw] = entry
	}
	return out, nil
}
