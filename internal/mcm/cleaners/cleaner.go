package cleaners

import (
	"fmt"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// Cleaner dispatches values to a type-specific cleaner by column name.
// Float and date columns use Float and Date; every other column uses Default.
type Cleaner struct {
	schema domain.Schema
	floats map[string]struct{}
	dates  map[string]struct{}
}

// New builds a cleaner from a schema. The schema is not copied and
// must not change while the cleaner is in use.
func New(schema domain.Schema) (*Cleaner, error) {
	if schema == nil {
		return nil, fmt.Errorf("new cleaner: %w", domain.ErrMissingSchema)
	}

	c := &Cleaner{
		schema: schema,
		floats: make(map[string]struct{}),
		dates:  make(map[string]struct{}),
	}
	for _, col := range schema.FloatColumns() {
		c.floats[col] = struct{}{}
	}
	for _, col := range schema.DateColumns() {
		c.dates[col] = struct{}{}
	}
	return c, nil
}

// ForKind builds a cleaner from the declared schema of a record kind.
func ForKind(kind domain.RecordKind) (*Cleaner, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("cleaner for %q: %w", kind, domain.ErrUnknownRecordKind)
	}
	return New(kind.Schema())
}

// Schema returns the schema the cleaner was built from.
func (c *Cleaner) Schema() domain.Schema {
	return c.schema
}

// IsTyped reports whether column is a float or date column.
func (c *Cleaner) IsTyped(column string) bool {
	_, isFloat := c.floats[column]
	_, isDate := c.dates[column]
	return isFloat || isDate
}

// Clean cleans v using the cleaner for column.
func (c *Cleaner) Clean(column string, v any) any {
	if _, ok := c.floats[column]; ok {
		return Float(v)
	}
	if _, ok := c.dates[column]; ok {
		return Date(v)
	}
	return Default(v)
}
