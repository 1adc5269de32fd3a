package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
	"github.com/custodia-labs/seedmerge/internal/logger"
	"github.com/custodia-labs/seedmerge/internal/mcm/cleaners"
	"github.com/custodia-labs/seedmerge/internal/mcm/mapper"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService maps import files into stored states and optionally
// merges each one into its best existing match.
type ImportService struct {
	source   driven.RowSource
	states   driven.StateStore
	mappings driving.MappingService
	matches  driving.MatchService
	merges   driving.MergeService
}

// NewImportService creates a new import service.
func NewImportService(
	source driven.RowSource,
	states driven.StateStore,
	mappings driving.MappingService,
	matches driving.MatchService,
	merges driving.MergeService,
) *ImportService {
	return &ImportService{
		source:   source,
		states:   states,
		mappings: mappings,
		matches:  matches,
		merges:   merges,
	}
}

// Import maps every row of the file at path and stores the resulting states.
func (s *ImportService) Import(ctx context.Context, path string, opts driving.ImportOptions) (*domain.ImportResult, error) {
	if s.source == nil || s.states == nil || s.mappings == nil {
		return nil, domain.ErrNotImplemented
	}

	kind := opts.Kind
	if opts.Mapping != nil && opts.Mapping.Kind != "" {
		if kind != "" && kind != opts.Mapping.Kind {
			return nil, fmt.Errorf("%w: mapping is for %s, import is for %s",
				domain.ErrInvalidInput, opts.Mapping.Kind, kind)
		}
		kind = opts.Mapping.Kind
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRecordKind, kind)
	}
	if !s.source.Supports(path) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}

	logger.Section("Import " + path)
	file, err := s.source.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logger.Debug("read %d rows with %d columns", len(file.Rows), len(file.Columns))

	mappingFile, err := s.resolveMapping(ctx, kind, file, opts.Mapping)
	if err != nil {
		return nil, err
	}

	cleaner, err := cleaners.ForKind(kind)
	if err != nil {
		return nil, err
	}

	logger.Section("Map rows")
	records, err := mapper.MapRows(ctx, file.Rows, mappingFile.Mapping.Destinations(), kind,
		mapper.WithCleaner(cleaner),
		mapper.WithConcat(mappingFile.Concat...),
	)
	if err != nil {
		return nil, fmt.Errorf("map rows: %w", err)
	}

	result := &domain.ImportResult{
		File:     path,
		Kind:     kind,
		Mapping:  mappingFile.Mapping,
		StateIDs: make([]string, 0, len(records)),
	}

	logger.Section("Store states")
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stored, merged, err := s.store(ctx, rec, opts.Merge)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if merged {
			result.Merged++
		}
		result.StateIDs = append(result.StateIDs, stored.ID())
	}

	logger.Info("imported %d %s states from %s (%d merged)", len(result.StateIDs), kind, path, result.Merged)
	return result, nil
}

// resolveMapping returns the reviewed mapping, or proposes one from the
// header. A reviewed mapping is saved so later imports reuse it.
func (s *ImportService) resolveMapping(
	ctx context.Context,
	kind domain.RecordKind,
	file *domain.SourceFile,
	reviewed *domain.MappingFile,
) (*domain.MappingFile, error) {
	if reviewed != nil {
		if err := s.mappings.Save(ctx, kind, reviewed.Mapping); err != nil {
			return nil, err
		}
		return reviewed, nil
	}

	logger.Section("Propose mapping")
	mapping, err := s.mappings.ProposeColumns(ctx, kind, file.Columns, nil)
	if err != nil {
		return nil, fmt.Errorf("propose mapping: %w", err)
	}
	return &domain.MappingFile{Kind: kind, Mapping: mapping}, nil
}

// store saves rec, first merging it into its best match when merge is set.
// The second result reports whether a merge happened.
func (s *ImportService) store(ctx context.Context, rec domain.Record, merge bool) (domain.Record, bool, error) {
	if merge && s.matches != nil && s.merges != nil {
		conf, existing, err := s.matches.BestMatch(ctx, rec)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			merged, err := s.merges.MergeRecords(existing, rec)
			if err != nil {
				return nil, false, err
			}
			if err := s.states.Save(ctx, merged); err != nil {
				return nil, false, fmt.Errorf("save merged state: %w", err)
			}
			if err := s.states.Delete(ctx, existing.Kind(), existing.ID()); err != nil {
				return nil, false, fmt.Errorf("delete state %s: %w", existing.ID(), err)
			}
			logger.Debug("merged into %s (confidence %.2f)", existing.ID(), conf)
			return merged, true, nil
		}
	}

	if err := s.states.Save(ctx, rec); err != nil {
		return nil, false, fmt.Errorf("save state: %w", err)
	}
	return rec, false, nil
}
