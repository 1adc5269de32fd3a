package filesystem

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

// Ensure CSVSource implements the interface.
var _ driven.RowSource = (*CSVSource)(nil)

const utf8BOM = "\uFEFF"

// CSVSource reads delimited text files. The first record is the header.
type CSVSource struct{}

// NewCSVSource creates a new CSV row source.
func NewCSVSource() *CSVSource {
	return &CSVSource{}
}

// Supports reports whether path has a .csv or .tsv extension.
func (s *CSVSource) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return true
	default:
		return false
	}
}

// Read parses the file at path. Cells beyond the header are dropped and
// missing trailing cells are left out of the row.
func (s *CSVSource) Read(ctx context.Context, path string) (*domain.SourceFile, error) {
	path = ResolvePath(path)
	if !s.Supports(path) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s has no header row", domain.ErrInvalidInput, path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := headerColumns(header)

	file := &domain.SourceFile{Path: path, Columns: columns}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if isEmptyRecord(record) {
			continue
		}

		row := make(domain.RawRow, len(columns))
		for i, cell := range record {
			if i >= len(columns) {
				break
			}
			row[columns[i]] = strings.TrimSpace(cell)
		}
		file.Rows = append(file.Rows, row)
	}

	return file, nil
}

// headerColumns trims header names and makes duplicates unique by
// suffixing " (2)", " (3)" and so on. Blank names become "column_N".
func headerColumns(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s (%d)", name, n)
		}
		columns[i] = name
	}
	return columns
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
