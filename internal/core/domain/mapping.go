package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawRow is one row of a source file: raw column name to raw cell value.
type RawRow map[string]any

// MappingEntry is the proposed destination of one raw column.
// It serialises as the two-element array [destination_or_null, confidence].
type MappingEntry struct {
	// Field is the canonical destination. Only meaningful when Mapped is true.
	Field string

	// Mapped is false for an explicit "maps to nothing" entry.
	Mapped bool

	// Confidence is the match score, 0-100 for fuzzy matches.
	Confidence float64
}

// MappedTo returns an entry pointing at field with the given confidence.
func MappedTo(field string, confidence float64) MappingEntry {
	return MappingEntry{Field: field, Mapped: true, Confidence: confidence}
}

// Unmapped returns an entry that maps to nothing with the given confidence.
func Unmapped(confidence float64) MappingEntry {
	return MappingEntry{Confidence: confidence}
}

// Destination returns the field name, or nil when unmapped.
func (e MappingEntry) Destination() *string {
	if !e.Mapped {
		return nil
	}
	f := e.Field
	return &f
}

// MarshalJSON encodes the entry as [destination_or_null, confidence].
func (e MappingEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Destination(), e.Confidence})
}

// UnmarshalJSON decodes [destination_or_null, confidence].
func (e *MappingEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: mapping entry: %w", ErrInvalidInput, err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("%w: mapping entry must have 2 elements, got %d", ErrInvalidInput, len(raw))
	}

	*e = MappingEntry{}
	if !bytes.Equal(bytes.TrimSpace(raw[0]), []byte("null")) {
		if err := json.Unmarshal(raw[0], &e.Field); err != nil {
			return fmt.Errorf("%w: mapping destination: %w", ErrInvalidInput, err)
		}
		e.Mapped = true
	}
	if err := json.Unmarshal(raw[1], &e.Confidence); err != nil {
		return fmt.Errorf("%w: mapping confidence: %w", ErrInvalidInput, err)
	}
	return nil
}

// ColumnMapping maps every raw column of an import to its proposed destination.
type ColumnMapping map[string]MappingEntry

// Destinations returns raw column to canonical field for mapped entries only.
func (m ColumnMapping) Destinations() FieldMapping {
	out := make(FieldMapping, len(m))
	for raw, e := range m {
		if e.Mapped {
			out[raw] = e.Field
		}
	}
	return out
}

// FieldMapping is the raw column to destination field map the row mapper applies.
type FieldMapping map[string]string

// ConcatGroup joins several raw columns into one synthesized target field.
type ConcatGroup struct {
	// Columns are the raw columns to join, in output order.
	Columns []string `json:"concat_columns" yaml:"concat_columns"`

	// Target is the destination field. Empty falls back to a sentinel.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Delimiter separates joined values. Empty means a single space.
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// MappingFile is the on-disk form of a reviewed mapping, as produced by
// `mapping propose` and consumed by `import`.
type MappingFile struct {
	Kind    RecordKind    `json:"kind" yaml:"kind"`
	Mapping ColumnMapping `json:"mapping" yaml:"mapping"`
	Concat  []ConcatGroup `json:"concat,omitempty" yaml:"concat,omitempty"`
}
