package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
	"github.com/custodia-labs/seedmerge/internal/logger"
	"github.com/custodia-labs/seedmerge/internal/merging"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeService merges two versions of the same entity.
type MergeService struct {
	states   driven.StateStore
	settings driving.SettingsService
}

// NewMergeService creates a new merge service.
func NewMergeService(states driven.StateStore, settings driving.SettingsService) *MergeService {
	return &MergeService{
		states:   states,
		settings: settings,
	}
}

// Merge merges two stored states into a new stored state.
// The inputs are deleted once the merged state is saved.
func (s *MergeService) Merge(ctx context.Context, kind domain.RecordKind, existingID, newID string) (domain.Record, error) {
	if s.states == nil {
		return nil, domain.ErrNotImplemented
	}
	if existingID == newID {
		return nil, fmt.Errorf("%w: cannot merge state %s with itself", domain.ErrInvalidInput, existingID)
	}

	existing, err := s.states.Get(ctx, kind, existingID)
	if err != nil {
		return nil, fmt.Errorf("get existing state %s: %w", existingID, err)
	}
	incoming, err := s.states.Get(ctx, kind, newID)
	if err != nil {
		return nil, fmt.Errorf("get new state %s: %w", newID, err)
	}

	merged, err := s.MergeRecords(existing, incoming)
	if err != nil {
		return nil, err
	}
	if err := s.states.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("save merged state: %w", err)
	}
	for _, id := range []string{existingID, newID} {
		if err := s.states.Delete(ctx, kind, id); err != nil {
			return nil, fmt.Errorf("delete state %s: %w", id, err)
		}
	}

	logger.Info("merged %s %s and %s into %s", kind, existingID, newID, merged.ID())
	return merged, nil
}

// MergeRecords merges incoming over existing into a fresh record.
func (s *MergeService) MergeRecords(existing, incoming domain.Record) (domain.Record, error) {
	if existing == nil || incoming == nil {
		return nil, fmt.Errorf("%w: nil state", domain.ErrInvalidInput)
	}

	settings := domain.DefaultMergeSettings()
	if s.settings != nil {
		app, err := s.settings.Get()
		if err != nil {
			return nil, fmt.Errorf("get settings: %w", err)
		}
		settings = app.Merge
	}

	merged, err := domain.NewRecord(existing.Kind())
	if err != nil {
		return nil, err
	}
	return merging.MergeState(merged, existing, incoming, settings.Priorities, merging.WithSettings(settings))
}
