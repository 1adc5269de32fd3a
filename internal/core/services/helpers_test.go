package services

import (
	"context"
	"path/filepath"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

// Ensure fakeSource implements the interface.
var _ driven.RowSource = (*fakeSource)(nil)

// fakeSource serves canned files keyed by path.
type fakeSource struct {
	files map[string]*domain.SourceFile
}

func newFakeSource(files ...*domain.SourceFile) *fakeSource {
	s := &fakeSource{files: make(map[string]*domain.SourceFile)}
	for _, f := range files {
		s.files[f.Path] = f
	}
	return s
}

func (s *fakeSource) Read(_ context.Context, path string) (*domain.SourceFile, error) {
	f, ok := s.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (s *fakeSource) Supports(path string) bool {
	return filepath.Ext(path) == ".csv"
}

func property(id string, fields map[string]any) domain.Record {
	p := domain.NewPropertyState()
	p.SetID(id)
	for k, v := range fields {
		p.SetField(k, v)
	}
	return p
}
