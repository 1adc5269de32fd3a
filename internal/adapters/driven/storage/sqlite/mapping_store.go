package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

// columnMappingStore implements driven.ColumnMappingStore.
type columnMappingStore struct {
	store *Store
}

var _ driven.ColumnMappingStore = (*columnMappingStore)(nil)

// Save stores every entry of mapping, replacing entries for the same raw column.
func (s *columnMappingStore) Save(ctx context.Context, kind domain.RecordKind, mapping domain.ColumnMapping) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO column_mappings (kind, raw_column, destination, confidence, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, raw_column) DO UPDATE SET
			destination = excluded.destination,
			confidence = excluded.confidence,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := formatTime(time.Now())
	for _, raw := range domain.SortedKeys(mapping) {
		entry := mapping[raw]
		var dest sql.NullString
		if entry.Mapped {
			dest = sql.NullString{String: entry.Field, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, string(kind), raw, dest, entry.Confidence, now); err != nil {
			return fmt.Errorf("saving column mapping %q: %w", raw, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get returns the saved entry for a raw column.
func (s *columnMappingStore) Get(ctx context.Context, kind domain.RecordKind, raw string) (domain.MappingEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT destination, confidence FROM column_mappings WHERE kind = ? AND raw_column = ?
	`, string(kind), raw)

	var dest sql.NullString
	var conf float64
	if err := row.Scan(&dest, &conf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MappingEntry{}, domain.ErrNotFound
		}
		return domain.MappingEntry{}, fmt.Errorf("scanning column mapping: %w", err)
	}
	return mappingEntry(dest, conf), nil
}

// List returns every saved entry of a kind.
func (s *columnMappingStore) List(ctx context.Context, kind domain.RecordKind) (domain.ColumnMapping, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT raw_column, destination, confidence FROM column_mappings WHERE kind = ?
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying column mappings: %w", err)
	}
	defer rows.Close()

	mapping := make(domain.ColumnMapping)
	for rows.Next() {
		var raw string
		var dest sql.NullString
		var conf float64
		if err := rows.Scan(&raw, &dest, &conf); err != nil {
			return nil, fmt.Errorf("scanning column mapping: %w", err)
		}
		mapping[raw] = mappingEntry(dest, conf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column mappings: %w", err)
	}
	return mapping, nil
}

func mappingEntry(dest sql.NullString, conf float64) domain.MappingEntry {
	if !dest.Valid {
		return domain.Unmapped(conf)
	}
	return domain.MappedTo(dest.String, conf)
}
