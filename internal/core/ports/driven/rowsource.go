package driven

import (
	"context"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// RowSource parses an import file into raw rows.
type RowSource interface {
	// Read parses the file at path.
	Read(ctx context.Context, path string) (*domain.SourceFile, error)

	// Supports reports whether the source can parse path.
	Supports(path string) bool
}

// FileWatcher reports changes to import files in a directory.
type FileWatcher interface {
	// Watch starts watching. The channel closes when ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.FileChange, error)

	// Close stops watching and releases resources.
	Close() error
}
