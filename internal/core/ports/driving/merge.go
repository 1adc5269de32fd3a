package driving

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// MergeService merges two versions of the same entity.
type MergeService interface {
	// Merge merges the stored states existingID and newID into a new
	// stored state and returns it. Both inputs are removed.
	Merge(ctx context.Context, kind domain.RecordKind, existingID, newID string) (domain.Record, error)

	// MergeRecords merges two in-memory states with the configured
	// settings without touching storage.
	MergeRecords(existing, incoming domain.Record) (domain.Record, error)
}
