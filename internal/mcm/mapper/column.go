package mapper

import (
	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/mcm/matchers"
)

// PreviousMapping looks up a saved mapping for a raw column. The second
// result is false when nothing was saved. A saved entry that maps to
// nothing is still returned with ok set.
type PreviousMapping func(raw string) (domain.MappingEntry, bool)

type columnConfig struct {
	previous  PreviousMapping
	defaults  map[string]domain.MappingEntry
	threshold int
	sim       matchers.Similarity
}

// ColumnOption configures BuildColumnMapping.
type ColumnOption func(*columnConfig)

// WithPreviousMapping sets the saved-mapping lookup.
func WithPreviousMapping(fn PreviousMapping) ColumnOption {
	return func(c *columnConfig) {
		c.previous = fn
	}
}

// WithDefaultMappings sets fixed mappings used when no previous mapping exists.
func WithDefaultMappings(defaults map[string]domain.MappingEntry) ColumnOption {
	return func(c *columnConfig) {
		c.defaults = defaults
	}
}

// WithThreshold sets the score a fuzzy match must exceed to be accepted.
func WithThreshold(n int) ColumnOption {
	return func(c *columnConfig) {
		c.threshold = n
	}
}

// WithSimilarity replaces the token-set similarity.
func WithSimilarity(sim matchers.Similarity) ColumnOption {
	return func(c *columnConfig) {
		if sim != nil {
			c.sim = sim
		}
	}
}

// BuildColumnMapping proposes a destination for every raw column.
// Each raw column appears exactly once in the result.
func BuildColumnMapping(rawColumns, destColumns []string, opts ...ColumnOption) domain.ColumnMapping {
	cfg := &columnConfig{sim: matchers.TokenSet{}}
	for _, opt := range opts {
		opt(cfg)
	}

	result := make(domain.ColumnMapping, len(rawColumns))
	for _, raw := range rawColumns {
		if _, done := result[raw]; done {
			continue
		}
		result[raw] = cfg.resolve(raw, destColumns)
	}
	return result
}

func (c *columnConfig) resolve(raw string, dest []string) domain.MappingEntry {
	if c.previous != nil {
		if entry, ok := c.previous(raw); ok {
			return entry
		}
	}

	if entry, ok := c.defaults[raw]; ok {
		return entry
	}

	best := matchers.BestMatchWith(c.sim, raw, dest, 1)
	if len(best) == 0 || best[0].Score <= c.threshold {
		return domain.Unmapped(0)
	}
	return domain.MappedTo(best[0].Target, float64(best[0].Score))
}
