package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRecordKind tests accepted spellings of record kinds
func TestParseRecordKind(t *testing.T) {
	tests := []struct {
		input    string
		expected RecordKind
		wantErr  bool
	}{
		{input: "property", expected: KindProperty},
		{input: "PropertyState", expected: KindProperty},
		{input: "taxlot", expected: KindTaxLot},
		{input: "tax_lot", expected: KindTaxLot},
		{input: "meter", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseRecordKind(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownRecordKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

// TestNewRecord tests record construction per kind
func TestNewRecord(t *testing.T) {
	rec, err := NewRecord(KindProperty)
	require.NoError(t, err)
	_, ok := rec.(*PropertyState)
	assert.True(t, ok)

	rec, err = NewRecord(KindTaxLot)
	require.NoError(t, err)
	_, ok = rec.(*TaxLotState)
	assert.True(t, ok)

	_, err = NewRecord("meter")
	assert.True(t, errors.Is(err, ErrUnknownRecordKind))
}

// TestRecord_DeclaredAndTransientFields tests routing of field writes
func TestRecord_DeclaredAndTransientFields(t *testing.T) {
	rec := NewTaxLotState()

	rec.SetField("address_line_1", "12 Main St")
	rec.SetField("__broken_target__", "x")

	v, ok := rec.GetField("address_line_1")
	assert.True(t, ok)
	assert.Equal(t, "12 Main St", v)

	v, ok = rec.GetField("__broken_target__")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, map[string]any{"__broken_target__": "x"}, rec.Transient())
	assert.NotContains(t, rec.Values(), "__broken_target__")

	v, ok = rec.GetField("city")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = rec.GetField("no_such_field")
	assert.False(t, ok)
}

// TestRecord_FieldNames tests that the declared field list matches the schema
func TestRecord_FieldNames(t *testing.T) {
	rec := NewPropertyState()
	names := rec.FieldNames()

	assert.Len(t, names, len(KindProperty.Schema()))
	for _, f := range GeocodingFields {
		assert.Contains(t, names, f)
	}

	names[0] = "mutated"
	assert.NotEqual(t, "mutated", rec.FieldNames()[0])
}

// TestRecord_ExtraDataNeverNil tests the extra data bag
func TestRecord_ExtraDataNeverNil(t *testing.T) {
	rec := NewPropertyState()
	assert.NotNil(t, rec.ExtraData())

	rec.SetExtraData(nil)
	assert.NotNil(t, rec.ExtraData())

	rec.ExtraData()["Notes"] = "hi"
	assert.Equal(t, "hi", rec.ExtraData()["Notes"])
}

// TestIsBlank tests blank detection
func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(""))
	assert.False(t, IsBlank(" "))
	assert.False(t, IsBlank(0))
	assert.False(t, IsBlank(false))
}

// TestDecodeExtraData tests conversion at the persistence boundary
func TestDecodeExtraData(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected map[string]any
		wantErr  bool
	}{
		{name: "nil", input: nil, expected: map[string]any{}},
		{name: "map", input: map[string]any{"a": 1}, expected: map[string]any{"a": 1}},
		{name: "string map", input: map[string]string{"a": "b"}, expected: map[string]any{"a": "b"}},
		{name: "json string", input: `{"a":"b"}`, expected: map[string]any{"a": "b"}},
		{name: "json bytes", input: []byte(`{"n":2}`), expected: map[string]any{"n": float64(2)}},
		{name: "empty string", input: "", expected: map[string]any{}},
		{name: "json null", input: "null", expected: map[string]any{}},
		{name: "bad json", input: "{", wantErr: true},
		{name: "unsupported type", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DecodeExtraData(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

// TestSchema_Columns tests typed column lookups
func TestSchema_Columns(t *testing.T) {
	s := NewSchema(
		FieldDef{"site_eui", FieldTypeFloat},
		FieldDef{"gross_floor_area", FieldTypeFloat},
		FieldDef{"year_ending", FieldTypeDate},
		FieldDef{"city", FieldTypeString},
	)

	assert.Equal(t, []string{"gross_floor_area", "site_eui"}, s.FloatColumns())
	assert.Equal(t, []string{"year_ending"}, s.DateColumns())
	assert.Equal(t, []string{"city", "gross_floor_area", "site_eui", "year_ending"}, s.Names())

	ft, ok := s.TypeOf("city")
	assert.True(t, ok)
	assert.Equal(t, FieldTypeString, ft)

	merged := s.Merge(Schema{"city": FieldTypeEnum})
	assert.Equal(t, FieldTypeEnum, merged["city"])
	assert.Equal(t, FieldTypeString, s["city"])
}

// TestAddMeasure_UniqueKey tests the per-state measure uniqueness rule
func TestAddMeasure_UniqueKey(t *testing.T) {
	p := NewPropertyState()
	m := Measure{ID: "a", MeasureID: "lighting.led", ApplicationScale: "Entire facility", ImplementationStatus: "Proposed"}

	require.NoError(t, p.AddMeasure(m))

	dup := m
	dup.ID = "b"
	dup.Name = "different name"
	err := p.AddMeasure(dup)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.Len(t, p.MeasureList(), 1)

	other := m
	other.ImplementationStatus = "Completed"
	require.NoError(t, p.AddMeasure(other))
	assert.Len(t, p.MeasureList(), 2)
}

// TestMeasure_Equivalent tests identity-free comparison
func TestMeasure_Equivalent(t *testing.T) {
	a := Measure{ID: "1", MeasureID: "m", Name: "LED", CostTotalFirst: 10}
	b := a
	b.ID = "2"
	assert.True(t, a.Equivalent(b))

	b.CostTotalFirst = 11
	assert.False(t, a.Equivalent(b))
}

func TestPopulatedFields(t *testing.T) {
	rec := NewTaxLotState()
	rec.SetField("city", "Denver")
	rec.SetField("state", "")
	rec.SetField("number_properties", 2.0)
	rec.SetField("note", "transient")

	assert.Equal(t, map[string]any{"city": "Denver", "number_properties": 2.0}, PopulatedFields(rec))
}
