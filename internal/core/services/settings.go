package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
	"github.com/custodia-labs/seedmerge/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPriorityPrefix      = "merge.priorities."
	keyExtraPriorityPrefix = "merge.priorities.extra_data."
	keyRecognizeEmpty      = "merge.recognize_empty"
	keyRecognizeEmptyExtra = "merge.recognize_empty_extra_data"
	keyIgnoreProtection    = "merge.ignore_protection"
	keyMappingThreshold    = "mapping.threshold"
	keyMinConfidence       = "match.min_confidence"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Invalid stored priorities are skipped with a warning.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	priorities := domain.NewPriorityConfig()
	for _, key := range s.configStore.Keys(keyPriorityPrefix) {
		raw := s.configStore.GetString(key)
		p, err := domain.ParseMergePriority(raw)
		if err != nil {
			logger.Warn("ignoring %s: %v", key, err)
			continue
		}
		if name, ok := strings.CutPrefix(key, keyExtraPriorityPrefix); ok {
			priorities.ExtraData[name] = p
			continue
		}
		priorities.Fields[strings.TrimPrefix(key, keyPriorityPrefix)] = p
	}

	settings := &domain.AppSettings{
		Merge: domain.MergeSettings{
			Priorities: priorities,
			RecognizeEmpty: domain.NewRecognizeEmpty(
				s.configStore.GetStringSlice(keyRecognizeEmpty),
				s.configStore.GetStringSlice(keyRecognizeEmptyExtra),
			),
			IgnoreMergeProtection: s.configStore.GetBool(keyIgnoreProtection),
		},
		Mapping: domain.MappingSettings{
			Threshold: s.getInt(keyMappingThreshold, defaults.Mapping.Threshold),
		},
		Match: domain.MatchSettings{
			MinConfidence: s.getFloat(keyMinConfidence, defaults.Match.MinConfidence),
		},
	}

	return settings, nil
}

// Save persists application settings, replacing every stored priority.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	for _, key := range s.configStore.Keys(keyPriorityPrefix) {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("clear priority %s: %w", key, err)
		}
	}
	for field, p := range settings.Merge.Priorities.Fields {
		if err := s.configStore.Set(keyPriorityPrefix+field, p.String()); err != nil {
			return fmt.Errorf("save priority %s: %w", field, err)
		}
	}
	for key, p := range settings.Merge.Priorities.ExtraData {
		if err := s.configStore.Set(keyExtraPriorityPrefix+key, p.String()); err != nil {
			return fmt.Errorf("save extra_data priority %s: %w", key, err)
		}
	}

	if err := s.configStore.Set(keyRecognizeEmpty, domain.SortedKeys(settings.Merge.RecognizeEmpty.Fields)); err != nil {
		return fmt.Errorf("save recognize_empty: %w", err)
	}
	if err := s.configStore.Set(keyRecognizeEmptyExtra, domain.SortedKeys(settings.Merge.RecognizeEmpty.ExtraData)); err != nil {
		return fmt.Errorf("save recognize_empty_extra_data: %w", err)
	}
	if err := s.configStore.Set(keyIgnoreProtection, settings.Merge.IgnoreMergeProtection); err != nil {
		return fmt.Errorf("save ignore_protection: %w", err)
	}
	if err := s.configStore.Set(keyMappingThreshold, settings.Mapping.Threshold); err != nil {
		return fmt.Errorf("save mapping threshold: %w", err)
	}
	if err := s.configStore.Set(keyMinConfidence, settings.Match.MinConfidence); err != nil {
		return fmt.Errorf("save min_confidence: %w", err)
	}

	return nil
}

// SetPriority sets the merge priority of a field or extra-data key.
func (s *SettingsService) SetPriority(field string, extra bool, priority domain.MergePriority) error {
	if field == "" {
		return fmt.Errorf("%w: field name is required", domain.ErrInvalidInput)
	}
	if !priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, priority)
	}

	key := keyPriorityPrefix + field
	if extra {
		key = keyExtraPriorityPrefix + field
	}
	return s.configStore.Set(key, priority.String())
}

// SetRecognizeEmpty adds or removes a field from the recognize-empty set.
func (s *SettingsService) SetRecognizeEmpty(field string, extra bool, enabled bool) error {
	if field == "" {
		return fmt.Errorf("%w: field name is required", domain.ErrInvalidInput)
	}

	key := keyRecognizeEmpty
	if extra {
		key = keyRecognizeEmptyExtra
	}

	current := s.configStore.GetStringSlice(key)
	idx := slices.Index(current, field)
	switch {
	case enabled && idx < 0:
		current = append(current, field)
		slices.Sort(current)
	case !enabled && idx >= 0:
		current = slices.Delete(current, idx, idx+1)
	default:
		return nil
	}
	return s.configStore.Set(key, current)
}

// SetIgnoreMergeProtection toggles new-always-wins merging.
func (s *SettingsService) SetIgnoreMergeProtection(ignore bool) error {
	return s.configStore.Set(keyIgnoreProtection, ignore)
}

// SetMappingThreshold sets the fuzzy score a column match must exceed.
func (s *SettingsService) SetMappingThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("%w: threshold must be between 0 and 100, got %d", domain.ErrInvalidInput, threshold)
	}
	return s.configStore.Set(keyMappingThreshold, threshold)
}

// SetMinConfidence sets the lowest reconcile confidence reported as a match.
func (s *SettingsService) SetMinConfidence(confidence float64) error {
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1, got %g", domain.ErrInvalidInput, confidence)
	}
	return s.configStore.Set(keyMinConfidence, confidence)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}
