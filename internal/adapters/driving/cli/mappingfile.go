package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// Mapping file formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// mappingDoc is the YAML form of a mapping file. Entries keep the
// [destination_or_null, confidence] pair shape of the JSON form.
type mappingDoc struct {
	Kind    string               `yaml:"kind"`
	Mapping map[string][]any     `yaml:"mapping"`
	Concat  []domain.ConcatGroup `yaml:"concat,omitempty"`
}

// formatForPath picks the mapping file format from a file extension.
func formatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return formatJSON
	}
	return formatYAML
}

// encodeMappingFile writes mf in the given format.
func encodeMappingFile(w io.Writer, mf *domain.MappingFile, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case formatJSON:
		data, err = json.MarshalIndent(mf, "", "  ")
		data = append(data, '\n')
	case formatYAML:
		data, err = yaml.Marshal(toMappingDoc(mf))
	default:
		return fmt.Errorf("%w: mapping format %q", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// readMappingFile loads a reviewed mapping from a JSON or YAML file.
func readMappingFile(path string) (*domain.MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	return decodeMappingFile(data, formatForPath(path))
}

func decodeMappingFile(data []byte, format string) (*domain.MappingFile, error) {
	if format == formatJSON {
		var mf domain.MappingFile
		if err := json.Unmarshal(data, &mf); err != nil {
			return nil, fmt.Errorf("parse mapping file: %w", err)
		}
		return &mf, nil
	}

	var doc mappingDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}
	return fromMappingDoc(doc)
}

func toMappingDoc(mf *domain.MappingFile) mappingDoc {
	doc := mappingDoc{
		Kind:    mf.Kind.String(),
		Mapping: make(map[string][]any, len(mf.Mapping)),
		Concat:  mf.Concat,
	}
	for col, e := range mf.Mapping {
		var dest any
		if e.Mapped {
			dest = e.Field
		}
		doc.Mapping[col] = []any{dest, e.Confidence}
	}
	return doc
}

func fromMappingDoc(doc mappingDoc) (*domain.MappingFile, error) {
	mf := &domain.MappingFile{
		Mapping: make(domain.ColumnMapping, len(doc.Mapping)),
		Concat:  doc.Concat,
	}
	if doc.Kind != "" {
		kind, err := domain.ParseRecordKind(doc.Kind)
		if err != nil {
			return nil, err
		}
		mf.Kind = kind
	}

	for col, pair := range doc.Mapping {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: mapping for %q must have 2 elements, got %d",
				domain.ErrInvalidInput, col, len(pair))
		}
		conf, ok := toFloat(pair[1])
		if !ok {
			return nil, fmt.Errorf("%w: confidence for %q is %T", domain.ErrInvalidInput, col, pair[1])
		}
		switch dest := pair[0].(type) {
		case nil:
			mf.Mapping[col] = domain.Unmapped(conf)
		case string:
			mf.Mapping[col] = domain.MappedTo(dest, conf)
		default:
			return nil, fmt.Errorf("%w: destination for %q is %T", domain.ErrInvalidInput, col, pair[0])
		}
	}
	return mf, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
