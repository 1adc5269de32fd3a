package merging

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/logger"
)

var log = logger.Component("merge")

type config struct {
	ignoreProtection bool
	recognizeEmpty   domain.RecognizeEmpty
	rules            []DerivedRule
}

// Option configures MergeState.
type Option func(*config)

// WithIgnoreMergeProtection makes state2 win every conflict regardless of priority.
func WithIgnoreMergeProtection(ignore bool) Option {
	return func(c *config) {
		c.ignoreProtection = ignore
	}
}

// WithRecognizeEmpty sets the fields and extra-data keys whose blank
// value may still win by priority.
func WithRecognizeEmpty(r domain.RecognizeEmpty) Option {
	return func(c *config) {
		c.recognizeEmpty = r
	}
}

// WithDerivedRules replaces the derived-field rules run after the copy pass.
func WithDerivedRules(rules ...DerivedRule) Option {
	return func(c *config) {
		c.rules = rules
	}
}

// WithSettings applies recognize-empty and protection settings in one go.
func WithSettings(s domain.MergeSettings) Option {
	return func(c *config) {
		c.recognizeEmpty = s.RecognizeEmpty
		c.ignoreProtection = s.IgnoreMergeProtection
	}
}

// MergeState merges state1 (existing) and state2 (new) into merged and
// returns it. merged may be a fresh record or one of the two states.
// All three must be of the same kind.
func MergeState(merged, state1, state2 domain.Record, priorities domain.PriorityConfig, opts ...Option) (domain.Record, error) {
	if merged == nil || state1 == nil || state2 == nil {
		return nil, fmt.Errorf("merge state: %w: nil record", domain.ErrInvalidInput)
	}
	if state1.Kind() != state2.Kind() || merged.Kind() != state1.Kind() {
		return nil, fmt.Errorf("merge state: %w: kinds %s, %s into %s",
			domain.ErrInvalidInput, state1.Kind(), state2.Kind(), merged.Kind())
	}

	cfg := &config{
		recognizeEmpty: domain.NewRecognizeEmpty(nil, nil),
		rules:          DefaultDerivedRules(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rels := snapshotRelationships(state1, state2)

	mergeGeocoding(merged, state1, state2, priorities, cfg)

	for _, attr := range scalarFields(state1, state2) {
		v1, _ := state1.GetField(attr)
		v2, _ := state2.GetField(attr)
		value := cfg.resolve(v1, v2, cfg.recognizeEmpty.HasField(attr), priorities.Field(attr))
		merged.SetField(attr, value)
	}

	merged.SetExtraData(mergeExtraData(state1.ExtraData(), state2.ExtraData(), priorities, cfg))

	applyDerivedRules(merged, cfg.rules)

	if holder, ok := merged.(domain.RelationshipHolder); ok && rels != nil {
		copyRelationships(holder, rels)
	}

	return merged, nil
}

// scalarFields is the union of declared fields of both states, without
// the geocoding group, in declaration order.
func scalarFields(state1, state2 domain.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range []domain.Record{state1, state2} {
		for _, f := range rec.FieldNames() {
			if domain.IsGeocodingField(f) {
				continue
			}
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// resolve picks between an existing and a new value. A blank value is
// only eligible when recognizeEmpty is set.
func (c *config) resolve(existing, incoming any, recognizeEmpty bool, priority domain.MergePriority) any {
	ok1 := recognizeEmpty || !domain.IsBlank(existing)
	ok2 := recognizeEmpty || !domain.IsBlank(incoming)

	switch {
	case ok1 && ok2:
		if c.ignoreProtection || priority != domain.FavorExisting {
			return incoming
		}
		return existing
	case ok1:
		return existing
	case ok2:
		return incoming
	default:
		return nil
	}
}

// mergeExtraData keeps every key seen on either side.
func mergeExtraData(extra1, extra2 map[string]any, priorities domain.PriorityConfig, cfg *config) map[string]any {
	keys := make(map[string]struct{}, len(extra1)+len(extra2))
	for k := range extra1 {
		keys[k] = struct{}{}
	}
	for k := range extra2 {
		keys[k] = struct{}{}
	}

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make(map[string]any, len(names))
	for _, k := range names {
		out[k] = cfg.resolve(extra1[k], extra2[k], cfg.recognizeEmpty.HasExtra(k), priorities.Extra(k))
	}
	return out
}
