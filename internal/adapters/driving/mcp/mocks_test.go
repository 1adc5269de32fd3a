package mcp

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// mockMappingService is a mock implementation of driving.MappingService.
type mockMappingService struct {
	mapping domain.ColumnMapping
	saved   domain.ColumnMapping
	cleaned any
	err     error

	gotRaw  []string
	gotDest []string
}

func (m *mockMappingService) Propose(_ context.Context, _ string, kind domain.RecordKind) (*domain.MappingFile, error) {
	return &domain.MappingFile{Kind: kind, Mapping: m.mapping}, m.err
}

func (m *mockMappingService) ProposeColumns(
	_ context.Context,
	_ domain.RecordKind,
	raw, dest []string,
) (domain.ColumnMapping, error) {
	m.gotRaw, m.gotDest = raw, dest
	return m.mapping, m.err
}

func (m *mockMappingService) Save(_ context.Context, _ domain.RecordKind, mapping domain.ColumnMapping) error {
	m.saved = mapping
	return m.err
}

func (m *mockMappingService) Show(_ context.Context, _ domain.RecordKind) (domain.ColumnMapping, error) {
	return m.saved, m.err
}

func (m *mockMappingService) Clean(_ domain.RecordKind, _ string, _ any) (any, error) {
	return m.cleaned, m.err
}

// mockMatchService is a mock implementation of driving.MatchService.
type mockMatchService struct {
	result *domain.MatchResult
	err    error
}

func (m *mockMatchService) FindMatch(_ context.Context, _ domain.RecordKind, _ string) (*domain.MatchResult, error) {
	return m.result, m.err
}

func (m *mockMatchService) BestMatch(_ context.Context, _ domain.Record) (float64, domain.Record, error) {
	return 0, nil, m.err
}

// mockMergeService is a mock implementation of driving.MergeService.
type mockMergeService struct {
	merged domain.Record
	err    error
}

func (m *mockMergeService) Merge(_ context.Context, _ domain.RecordKind, _, _ string) (domain.Record, error) {
	return m.merged, m.err
}

func (m *mockMergeService) MergeRecords(_, _ domain.Record) (domain.Record, error) {
	return m.merged, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.settings, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetPriority(_ string, _ bool, _ domain.MergePriority) error {
	return m.err
}

func (m *mockSettingsService) SetRecognizeEmpty(_ string, _, _ bool) error { return m.err }

func (m *mockSettingsService) SetIgnoreMergeProtection(_ bool) error { return m.err }

func (m *mockSettingsService) SetMappingThreshold(_ int) error { return m.err }

func (m *mockSettingsService) SetMinConfidence(_ float64) error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
