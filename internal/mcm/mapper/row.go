package mapper

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/mcm/cleaners"
)

// BrokenTarget is the field a concat group writes to when it declares
// no target. It is never a declared field, so the joined value lands in
// the record's transient bag where it can be detected.
const BrokenTarget = "__broken_target__"

// DefaultDelimiter joins concat values when a group declares none.
const DefaultDelimiter = " "

// ApplyFunc writes a cleaned value to a record in place of SetField.
type ApplyFunc func(rec domain.Record, field string, value any)

type rowConfig struct {
	cleaner      *cleaners.Cleaner
	concat       []domain.ConcatGroup
	initial      map[string]any
	applyColumns map[string]struct{}
	apply        ApplyFunc
}

// RowOption configures MapRow.
type RowOption func(*rowConfig)

// WithCleaner sets the value cleaner. Without one, values are written as read.
func WithCleaner(c *cleaners.Cleaner) RowOption {
	return func(cfg *rowConfig) {
		cfg.cleaner = c
	}
}

// WithConcat adds concat groups.
func WithConcat(groups ...domain.ConcatGroup) RowOption {
	return func(cfg *rowConfig) {
		cfg.concat = append(cfg.concat, groups...)
	}
}

// WithInitialData seeds the record before any column is mapped. The
// "extra_data" key may hold a map or a JSON string.
func WithInitialData(data map[string]any) RowOption {
	return func(cfg *rowConfig) {
		cfg.initial = data
	}
}

// WithApply routes the given raw columns (and concat targets) through fn
// instead of SetField.
func WithApply(columns []string, fn ApplyFunc) RowOption {
	return func(cfg *rowConfig) {
		cfg.apply = fn
		cfg.applyColumns = make(map[string]struct{}, len(columns))
		for _, c := range columns {
			cfg.applyColumns[c] = struct{}{}
		}
	}
}

// MapRow builds one record of the given kind from a raw row.
func MapRow(row domain.RawRow, mapping domain.FieldMapping, kind domain.RecordKind, opts ...RowOption) (domain.Record, error) {
	cfg := &rowConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.mapRow(row, mapping, kind)
}

// MapRows maps a batch of rows concurrently. The result has the same
// order as rows. Options are shared by every row and must be safe for
// concurrent use.
func MapRows(ctx context.Context, rows []domain.RawRow, mapping domain.FieldMapping, kind domain.RecordKind, opts ...RowOption) ([]domain.Record, error) {
	cfg := &rowConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	records := make([]domain.Record, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := cfg.mapRow(row, mapping, kind)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (cfg *rowConfig) mapRow(row domain.RawRow, mapping domain.FieldMapping, kind domain.RecordKind) (domain.Record, error) {
	rec, err := domain.NewRecord(kind)
	if err != nil {
		return nil, fmt.Errorf("map row: %w", err)
	}

	extra, err := cfg.seed(rec)
	if err != nil {
		return nil, fmt.Errorf("map row: %w", err)
	}

	concatColumns := make(map[string]struct{})
	for _, g := range cfg.concat {
		for _, c := range g.Columns {
			concatColumns[c] = struct{}{}
		}
	}
	buffered := make(map[string]string)

	for _, raw := range domain.SortedKeys(row) {
		value := row[raw]
		if domain.IsBlank(value) {
			continue
		}

		if _, ok := concatColumns[raw]; ok {
			buffered[raw] = stringify(value)
			continue
		}

		dest, mapped := mapping[raw]
		cleaned := cfg.clean(raw, dest, mapped, value)

		if !mapped {
			extra[raw] = cleaned
			continue
		}
		cfg.write(rec, raw, dest, cleaned)
	}

	for _, g := range cfg.concat {
		if len(g.Columns) == 0 {
			continue
		}

		parts := make([]string, 0, len(g.Columns))
		for _, c := range g.Columns {
			if v, ok := buffered[c]; ok {
				parts = append(parts, v)
			}
		}
		if len(parts) == 0 {
			continue
		}

		delim := g.Delimiter
		if delim == "" {
			delim = DefaultDelimiter
		}
		target := g.Target
		if target == "" {
			target = BrokenTarget
		}
		cfg.write(rec, target, target, strings.Join(parts, delim))
	}

	rec.SetExtraData(extra)
	return rec, nil
}

// seed applies initial data and returns the extra-data map to fill.
func (cfg *rowConfig) seed(rec domain.Record) (map[string]any, error) {
	extra := make(map[string]any)
	for _, key := range domain.SortedKeys(cfg.initial) {
		value := cfg.initial[key]
		if key == domain.ExtraDataField {
			decoded, err := domain.DecodeExtraData(value)
			if err != nil {
				return nil, err
			}
			maps.Copy(extra, decoded)
			continue
		}
		rec.SetField(key, value)
	}
	return extra, nil
}

func (cfg *rowConfig) clean(raw, dest string, mapped bool, value any) any {
	if cfg.cleaner == nil {
		return value
	}
	if cfg.cleaner.IsTyped(raw) {
		return cfg.cleaner.Clean(raw, value)
	}
	name := raw
	if mapped {
		name = dest
	}
	return cfg.cleaner.Clean(name, value)
}

func (cfg *rowConfig) write(rec domain.Record, key, field string, value any) {
	if cfg.apply != nil {
		if _, ok := cfg.applyColumns[key]; ok {
			cfg.apply(rec, field, value)
			return
		}
	}
	rec.SetField(field, value)
}

// stringify renders a buffered concat value.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Columns returns the raw column names of rows in sorted order.
func Columns(rows []domain.RawRow) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
