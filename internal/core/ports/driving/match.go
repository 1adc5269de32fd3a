package driving

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// MatchService finds existing states that describe the same entity.
type MatchService interface {
	// FindMatch returns the best stored match for a stored state.
	FindMatch(ctx context.Context, kind domain.RecordKind, id string) (*domain.MatchResult, error)

	// BestMatch returns the best match for rec among the stored states of
	// its kind, excluding rec itself. The record is nil when nothing scored
	// at or above the configured minimum confidence.
	BestMatch(ctx context.Context, rec domain.Record) (float64, domain.Record, error)
}
