package driving

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// ImportOptions configures an import run.
type ImportOptions struct {
	// Kind is the record kind rows are mapped to.
	Kind domain.RecordKind

	// Mapping is a reviewed mapping file. Nil proposes one from the header.
	Mapping *domain.MappingFile

	// Merge matches each imported state against existing states and
	// merges it into the best match above the configured confidence.
	Merge bool
}

// ImportService imports files into states.
type ImportService interface {
	// Import maps every row of the file and stores the resulting states.
	Import(ctx context.Context, path string, opts ImportOptions) (*domain.ImportResult, error)
}
