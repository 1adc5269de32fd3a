package reconcile

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/mcm/matchers"
)

// Matcher scores and selects candidate records.
type Matcher struct {
	sim matchers.Similarity
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithSimilarity replaces the token-set similarity.
func WithSimilarity(sim matchers.Similarity) Option {
	return func(m *Matcher) {
		if sim != nil {
			m.sim = sim
		}
	}
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{sim: matchers.TokenSet{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BuildQuery builds the filter for known using the named correspondence
// list. Fields blank on the known record add no predicate.
func BuildQuery(known domain.Record, mappingName string) (Query, error) {
	list, err := Correspondences(mappingName)
	if err != nil {
		return nil, err
	}

	query := And{}
	for _, c := range list {
		v, ok := known.GetField(c.Known)
		if !ok || domain.IsBlank(v) {
			continue
		}
		s := valueString(v)

		if c.Address {
			if q := AddressQuery(c.Candidate, s); q != nil {
				query = append(query, q)
			}
			continue
		}
		query = append(query, Contains{Field: c.Candidate, Value: s})
	}
	return query, nil
}

// Search returns the candidates in pool that satisfy the query built for known.
func (m *Matcher) Search(known domain.Record, pool []domain.Record, mappingName string) ([]domain.Record, error) {
	query, err := BuildQuery(known, mappingName)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var out []domain.Record
	for _, c := range pool {
		if query.Match(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CalculateConfidence returns the mean similarity, in [0, 1], over the
// correspondences populated on both records. Pairs blank on either side
// are left out. No evaluated pair gives 0.
func (m *Matcher) CalculateConfidence(known, candidate domain.Record, mappingName string) (float64, error) {
	list, err := Correspondences(mappingName)
	if err != nil {
		return 0, fmt.Errorf("calculate confidence: %w", err)
	}

	var total float64
	var count int
	for _, c := range list {
		kv, ok := known.GetField(c.Known)
		if !ok || domain.IsBlank(kv) {
			continue
		}
		cv, ok := candidate.GetField(c.Candidate)
		if !ok || domain.IsBlank(cv) {
			continue
		}
		total += float64(m.sim.Score(valueString(kv), valueString(cv))) / 100
		count++
	}
	return total / float64(max(count, 1)), nil
}

// GetBestMatch returns the highest scoring candidate and its confidence.
// The first of equally scoring candidates wins. A nil record means no
// candidate scored above zero.
func (m *Matcher) GetBestMatch(known domain.Record, candidates []domain.Record, mappingName string) (float64, domain.Record, error) {
	var best domain.Record
	var bestConf float64
	for _, c := range candidates {
		conf, err := m.CalculateConfidence(known, c, mappingName)
		if err != nil {
			return 0, nil, fmt.Errorf("get best match: %w", err)
		}
		if conf > bestConf {
			bestConf, best = conf, c
		}
	}
	return bestConf, best, nil
}

func valueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
