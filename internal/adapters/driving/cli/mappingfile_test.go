package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, formatJSON, formatForPath("mapping.json"))
	assert.Equal(t, formatJSON, formatForPath("MAPPING.JSON"))
	assert.Equal(t, formatYAML, formatForPath("mapping.yaml"))
	assert.Equal(t, formatYAML, formatForPath("mapping.yml"))
	assert.Equal(t, formatYAML, formatForPath("mapping"))
}

func TestEncodeMappingFile_YAML(t *testing.T) {
	mf := &domain.MappingFile{
		Kind: domain.KindProperty,
		Mapping: domain.ColumnMapping{
			"Address 1": domain.MappedTo("address_line_1", 100),
			"Qqq":       domain.Unmapped(0),
			"Bldg Name": domain.MappedTo("property_name", 72.5),
		},
		Concat: []domain.ConcatGroup{{Columns: []string{"No", "Street"}, Target: "address_line_1", Delimiter: "-"}},
	}

	var buf bytes.Buffer
	require.NoError(t, encodeMappingFile(&buf, mf, formatYAML))
	assert.Contains(t, buf.String(), "kind: property")

	got, err := decodeMappingFile(buf.Bytes(), formatYAML)
	require.NoError(t, err)
	assert.Equal(t, mf, got)
}

func TestDecodeMappingFile_YAML(t *testing.T) {
	t.Run("hand written", func(t *testing.T) {
		data := []byte(`kind: taxlots
mapping:
  BBL: [jurisdiction_tax_lot_id, 100]
  Notes: [null, 0]
`)
		mf, err := decodeMappingFile(data, formatYAML)

		require.NoError(t, err)
		assert.Equal(t, domain.KindTaxLot, mf.Kind)
		assert.Equal(t, domain.MappedTo("jurisdiction_tax_lot_id", 100), mf.Mapping["BBL"])
		assert.Equal(t, domain.Unmapped(0), mf.Mapping["Notes"])
	})

	tests := []struct {
		name string
		data string
	}{
		{"wrong arity", "mapping:\n  A: [city]\n"},
		{"non-numeric confidence", "mapping:\n  A: [city, high]\n"},
		{"non-string destination", "mapping:\n  A: [[city], 100]\n"},
		{"unknown kind", "kind: garage\nmapping: {}\n"},
		{"not yaml", "mapping: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeMappingFile([]byte(tt.data), formatYAML)
			assert.Error(t, err)
		})
	}
}

func TestEncodeMappingFile_JSON(t *testing.T) {
	mf := &domain.MappingFile{
		Kind:    domain.KindTaxLot,
		Mapping: domain.ColumnMapping{"BBL": domain.MappedTo("jurisdiction_tax_lot_id", 100)},
	}

	var buf bytes.Buffer
	require.NoError(t, encodeMappingFile(&buf, mf, formatJSON))
	assert.Contains(t, buf.String(), `"BBL": [`)

	got, err := decodeMappingFile(buf.Bytes(), formatJSON)
	require.NoError(t, err)
	assert.Equal(t, mf, got)
}

func TestEncodeMappingFile_UnknownFormat(t *testing.T) {
	err := encodeMappingFile(&bytes.Buffer{}, &domain.MappingFile{}, "xml")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
