package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

// stateStore implements driven.StateStore.
type stateStore struct {
	store *Store
}

var _ driven.StateStore = (*stateStore)(nil)

// valuer exposes the populated declared fields of a record.
type valuer interface {
	Values() map[string]any
}

// Save stores or updates a state and replaces its relationships.
func (s *stateStore) Save(ctx context.Context, rec domain.Record) error {
	if rec == nil {
		return fmt.Errorf("%w: nil state", domain.ErrInvalidInput)
	}
	if rec.ID() == "" {
		rec.SetID(uuid.NewString())
	}

	dataJSON, err := json.Marshal(recordValues(rec))
	if err != nil {
		return fmt.Errorf("marshalling state data: %w", err)
	}
	extraJSON, err := json.Marshal(rec.ExtraData())
	if err != nil {
		return fmt.Errorf("marshalling extra data: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := formatTime(time.Now())
	_, err = tx.ExecContext(ctx, `
		INSERT INTO states (id, kind, data, extra_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			data = excluded.data,
			extra_data = excluded.extra_data,
			updated_at = excluded.updated_at
	`, rec.ID(), string(rec.Kind()), string(dataJSON), string(extraJSON), now, now)
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	if holder, ok := rec.(domain.RelationshipHolder); ok {
		if err := saveRelationships(ctx, tx, holder); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a state by kind and ID.
func (s *stateStore) Get(ctx context.Context, kind domain.RecordKind, id string) (domain.Record, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, kind, data, extra_data FROM states WHERE kind = ? AND id = ?
	`, string(kind), id)

	rec, err := scanState(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadRelationships(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all states of a kind, oldest first.
func (s *stateStore) List(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	return s.Search(ctx, kind, nil)
}

// Search returns the states of a kind that satisfy filter. A nil filter
// matches all. The filter's SQL runs server-side against the data column.
func (s *stateStore) Search(ctx context.Context, kind domain.RecordKind, filter domain.RecordFilter) ([]domain.Record, error) {
	query := "SELECT id, kind, data, extra_data FROM states WHERE kind = ?"
	args := []any{string(kind)}
	if filter != nil {
		where, whereArgs := filter.SQL()
		query += " AND (" + where + ")"
		args = append(args, whereArgs...)
	}
	query += " ORDER BY rowid"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying states: %w", err)
	}
	defer rows.Close()

	var states []domain.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating states: %w", err)
	}

	for _, rec := range states {
		if err := s.loadRelationships(ctx, rec); err != nil {
			return nil, err
		}
	}
	return states, nil
}

// Delete removes a state and its relationships.
func (s *stateStore) Delete(ctx context.Context, kind domain.RecordKind, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteRelationships(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM states WHERE kind = ? AND id = ?", string(kind), id); err != nil {
		return fmt.Errorf("deleting state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// recordValues returns the populated declared fields of rec.
func recordValues(rec domain.Record) map[string]any {
	if v, ok := rec.(valuer); ok {
		return v.Values()
	}
	out := make(map[string]any)
	for _, name := range rec.FieldNames() {
		if v, _ := rec.GetField(name); v != nil {
			out[name] = v
		}
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanState(row rowScanner) (domain.Record, error) {
	var id, kind, dataJSON, extraJSON string
	if err := row.Scan(&id, &kind, &dataJSON, &extraJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning state: %w", err)
	}

	rec, err := domain.NewRecord(domain.RecordKind(kind))
	if err != nil {
		return nil, err
	}
	rec.SetID(id)

	var data map[string]any
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return nil, fmt.Errorf("unmarshalling state data: %w", err)
	}
	for name, v := range data {
		if rec.HasField(name) {
			rec.SetField(name, v)
		}
	}

	extra, err := domain.DecodeExtraData(extraJSON)
	if err != nil {
		return nil, err
	}
	rec.SetExtraData(extra)
	return rec, nil
}
