package driving

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// MappingService proposes, stores and applies column mappings.
type MappingService interface {
	// Propose reads the header of an import file and proposes a mapping
	// onto the declared fields of kind.
	Propose(ctx context.Context, path string, kind domain.RecordKind) (*domain.MappingFile, error)

	// ProposeColumns proposes a mapping for raw column names onto dest.
	// An empty dest uses the declared fields of kind.
	ProposeColumns(ctx context.Context, kind domain.RecordKind, raw, dest []string) (domain.ColumnMapping, error)

	// Save stores a reviewed mapping so later imports reuse it.
	Save(ctx context.Context, kind domain.RecordKind, mapping domain.ColumnMapping) error

	// Show returns the saved mapping of a kind.
	Show(ctx context.Context, kind domain.RecordKind) (domain.ColumnMapping, error)

	// Clean runs the cleaner of kind for one column value.
	Clean(kind domain.RecordKind, column string, value any) (any, error)
}
