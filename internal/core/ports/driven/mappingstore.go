package driven

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// ColumnMappingStore persists reviewed column mappings per record kind.
// Saved entries take precedence over fuzzy guesses on later imports.
type ColumnMappingStore interface {
	// Save stores every entry of mapping, replacing entries for the same raw column.
	Save(ctx context.Context, kind domain.RecordKind, mapping domain.ColumnMapping) error

	// Get returns the saved entry for a raw column.
	// Returns domain.ErrNotFound if nothing is saved.
	Get(ctx context.Context, kind domain.RecordKind, raw string) (domain.MappingEntry, error)

	// List returns every saved entry of a kind.
	List(ctx context.Context, kind domain.RecordKind) (domain.ColumnMapping, error)
}
