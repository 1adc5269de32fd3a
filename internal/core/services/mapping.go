package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
	"github.com/custodia-labs/seedmerge/internal/logger"
	"github.com/custodia-labs/seedmerge/internal/mcm/cleaners"
	"github.com/custodia-labs/seedmerge/internal/mcm/mapper"
)

// Ensure MappingService implements the interface.
var _ driving.MappingService = (*MappingService)(nil)

// portfolioManagerColumns maps well-known Portfolio Manager export headers
// onto declared fields. Fuzzy matching does poorly on these.
var portfolioManagerColumns = map[domain.RecordKind]map[string]string{
	domain.KindProperty: {
		"Portfolio Manager Property ID":        "pm_property_id",
		"Portfolio Manager Parent Property ID": "pm_parent_property_id",
		"Property Name":                        "property_name",
		"Address 1":                            "address_line_1",
		"Address 2":                            "address_line_2",
		"Postal Code":                          "postal_code",
		"Year Built":                           "year_built",
		"Property GFA - Self-Reported (ft²)":   "gross_floor_area",
		"Site EUI (kBtu/ft²)":                  "site_eui",
		"Source EUI (kBtu/ft²)":                "source_eui",
		"ENERGY STAR Score":                    "energy_score",
		"Year Ending":                          "year_ending",
		"Release Date":                         "release_date",
		"Generation Date":                      "generation_date",
	},
	domain.KindTaxLot: {
		"Tax Lot ID":          "jurisdiction_tax_lot_id",
		"BBL":                 "jurisdiction_tax_lot_id",
		"Address 1":           "address_line_1",
		"Postal Code":         "postal_code",
		"Number of Buildings": "number_properties",
	},
}

// MappingService proposes, stores and applies column mappings.
type MappingService struct {
	source   driven.RowSource
	mappings driven.ColumnMappingStore
	settings driving.SettingsService
}

// NewMappingService creates a new mapping service.
func NewMappingService(
	source driven.RowSource,
	mappings driven.ColumnMappingStore,
	settings driving.SettingsService,
) *MappingService {
	return &MappingService{
		source:   source,
		mappings: mappings,
		settings: settings,
	}
}

// Propose reads an import file and proposes a mapping for its header.
func (s *MappingService) Propose(ctx context.Context, path string, kind domain.RecordKind) (*domain.MappingFile, error) {
	if s.source == nil {
		return nil, domain.ErrNotImplemented
	}
	if !s.source.Supports(path) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}

	file, err := s.source.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	mapping, err := s.ProposeColumns(ctx, kind, file.Columns, nil)
	if err != nil {
		return nil, err
	}
	return &domain.MappingFile{Kind: kind, Mapping: mapping}, nil
}

// ProposeColumns proposes a mapping for raw columns onto dest.
func (s *MappingService) ProposeColumns(ctx context.Context, kind domain.RecordKind, raw, dest []string) (domain.ColumnMapping, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRecordKind, kind)
	}
	if len(dest) == 0 {
		dest = kind.Schema().Names()
	}

	threshold := domain.DefaultMappingThreshold
	if s.settings != nil {
		settings, err := s.settings.Get()
		if err != nil {
			return nil, fmt.Errorf("get settings: %w", err)
		}
		threshold = settings.Mapping.Threshold
	}

	opts := []mapper.ColumnOption{
		mapper.WithThreshold(threshold),
		mapper.WithDefaultMappings(defaultMappings(kind)),
	}
	if s.mappings != nil {
		opts = append(opts, mapper.WithPreviousMapping(s.previousMapping(ctx, kind)))
	}

	mapping := mapper.BuildColumnMapping(raw, dest, opts...)
	logger.Debug("proposed %d column mappings for %s", len(mapping), kind)
	return mapping, nil
}

// Save stores a reviewed mapping.
func (s *MappingService) Save(ctx context.Context, kind domain.RecordKind, mapping domain.ColumnMapping) error {
	if s.mappings == nil {
		return domain.ErrNotImplemented
	}
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRecordKind, kind)
	}
	if err := s.mappings.Save(ctx, kind, mapping); err != nil {
		return fmt.Errorf("save mapping: %w", err)
	}
	return nil
}

// Show returns the saved mapping of a kind.
func (s *MappingService) Show(ctx context.Context, kind domain.RecordKind) (domain.ColumnMapping, error) {
	if s.mappings == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.mappings.List(ctx, kind)
}

// Clean runs the cleaner of kind for one column value.
func (s *MappingService) Clean(kind domain.RecordKind, column string, value any) (any, error) {
	c, err := cleaners.ForKind(kind)
	if err != nil {
		return nil, err
	}
	return c.Clean(column, value), nil
}

// previousMapping adapts the mapping store to the column mapper's lookup.
// Store failures other than not-found are logged and treated as a miss.
func (s *MappingService) previousMapping(ctx context.Context, kind domain.RecordKind) mapper.PreviousMapping {
	return func(raw string) (domain.MappingEntry, bool) {
		entry, err := s.mappings.Get(ctx, kind, raw)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("lookup saved mapping for %q: %v", raw, err)
			}
			return domain.MappingEntry{}, false
		}
		return entry, true
	}
}

func defaultMappings(kind domain.RecordKind) map[string]domain.MappingEntry {
	columns := portfolioManagerColumns[kind]
	out := make(map[string]domain.MappingEntry, len(columns))
	for raw, field := range columns {
		out[raw] = domain.MappedTo(field, 100)
	}
	return out
}
