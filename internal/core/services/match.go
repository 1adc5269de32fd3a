package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
	"github.com/custodia-labs/seedmerge/internal/logger"
	"github.com/custodia-labs/seedmerge/internal/reconcile"
)

// Ensure MatchService implements the interface.
var _ driving.MatchService = (*MatchService)(nil)

// MatchService finds stored states that describe the same entity.
type MatchService struct {
	states   driven.StateStore
	settings driving.SettingsService
	matcher  *reconcile.Matcher
}

// NewMatchService creates a new match service.
func NewMatchService(states driven.StateStore, settings driving.SettingsService) *MatchService {
	return &MatchService{
		states:   states,
		settings: settings,
		matcher:  reconcile.New(),
	}
}

// FindMatch returns the best stored match for a stored state.
func (s *MatchService) FindMatch(ctx context.Context, kind domain.RecordKind, id string) (*domain.MatchResult, error) {
	if s.states == nil {
		return nil, domain.ErrNotImplemented
	}
	rec, err := s.states.Get(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("get state %s: %w", id, err)
	}

	candidates, err := s.candidates(ctx, rec)
	if err != nil {
		return nil, err
	}
	conf, best, err := s.best(rec, candidates)
	if err != nil {
		return nil, err
	}

	result := &domain.MatchResult{
		StateID:    id,
		Confidence: conf,
		Candidates: len(candidates),
	}
	if best != nil {
		result.MatchID = best.ID()
	}
	return result, nil
}

// BestMatch returns the best stored match for rec, excluding rec itself.
func (s *MatchService) BestMatch(ctx context.Context, rec domain.Record) (float64, domain.Record, error) {
	if s.states == nil {
		return 0, nil, domain.ErrNotImplemented
	}
	if rec == nil {
		return 0, nil, fmt.Errorf("%w: nil state", domain.ErrInvalidInput)
	}

	candidates, err := s.candidates(ctx, rec)
	if err != nil {
		return 0, nil, err
	}
	return s.best(rec, candidates)
}

// candidates runs the correspondence query against the store.
func (s *MatchService) candidates(ctx context.Context, rec domain.Record) ([]domain.Record, error) {
	name, err := reconcile.MappingFor(rec.Kind(), rec.Kind())
	if err != nil {
		return nil, err
	}
	query, err := reconcile.BuildQuery(rec, name)
	if err != nil {
		return nil, err
	}

	found, err := s.states.Search(ctx, rec.Kind(), query)
	if err != nil {
		return nil, fmt.Errorf("search states: %w", err)
	}

	out := found[:0]
	for _, c := range found {
		if rec.ID() != "" && c.ID() == rec.ID() {
			continue
		}
		out = append(out, c)
	}
	logger.Debug("%d candidate %s states", len(out), rec.Kind())
	return out, nil
}

// best scores candidates and drops a winner below the configured minimum.
func (s *MatchService) best(rec domain.Record, candidates []domain.Record) (float64, domain.Record, error) {
	name, err := reconcile.MappingFor(rec.Kind(), rec.Kind())
	if err != nil {
		return 0, nil, err
	}
	conf, best, err := s.matcher.GetBestMatch(rec, candidates, name)
	if err != nil {
		return 0, nil, err
	}

	minConf := domain.DefaultMatchConfidence
	if s.settings != nil {
		settings, err := s.settings.Get()
		if err != nil {
			return 0, nil, fmt.Errorf("get settings: %w", err)
		}
		minConf = settings.Match.MinConfidence
	}
	if best == nil || conf < minConf {
		return conf, nil, nil
	}
	return conf, best, nil
}
