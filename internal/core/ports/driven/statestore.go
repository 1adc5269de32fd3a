package driven

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// StateStore persists property and tax-lot states.
type StateStore interface {
	// Save stores or updates a state. An empty ID is assigned on save.
	// Property relationships are replaced with the state's current lists.
	Save(ctx context.Context, rec domain.Record) error

	// Get retrieves a state by kind and ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, kind domain.RecordKind, id string) (domain.Record, error)

	// List returns all states of a kind, oldest first.
	List(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error)

	// Search returns the states of a kind that satisfy filter.
	Search(ctx context.Context, kind domain.RecordKind, filter domain.RecordFilter) ([]domain.Record, error)

	// Delete removes a state and its relationships.
	Delete(ctx context.Context, kind domain.RecordKind, id string) error
}
