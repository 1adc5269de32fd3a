package domain

import "sort"

// FieldType is the declared semantic type of a canonical field.
type FieldType string

// Supported field types.
const (
	// FieldTypeFloat holds numeric values (areas, EUI metrics, coordinates).
	FieldTypeFloat FieldType = "float"

	// FieldTypeDate holds dates (year ending, release date).
	FieldTypeDate FieldType = "date"

	// FieldTypeString holds free text.
	FieldTypeString FieldType = "string"

	// FieldTypeEnum holds one of a fixed set of choices.
	FieldTypeEnum FieldType = "enum"

	// FieldTypeBool holds yes/no values.
	FieldTypeBool FieldType = "bool"
)

// IsValid returns true if the field type is recognised.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeFloat, FieldTypeDate, FieldTypeString, FieldTypeEnum, FieldTypeBool:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FieldType) String() string {
	return string(t)
}

// FieldDef declares one canonical field of a record kind.
type FieldDef struct {
	Name string
	Type FieldType
}

// Schema maps canonical field names to their declared types.
// It is read-only for the duration of any map or merge call.
type Schema map[string]FieldType

// NewSchema builds a schema from field definitions.
func NewSchema(defs ...FieldDef) Schema {
	s := make(Schema, len(defs))
	for _, d := range defs {
		s[d.Name] = d.Type
	}
	return s
}

// TypeOf returns the declared type of a field and whether it is declared.
func (s Schema) TypeOf(name string) (FieldType, bool) {
	t, ok := s[name]
	return t, ok
}

// FloatColumns returns the sorted names of all float fields.
func (s Schema) FloatColumns() []string {
	return s.columnsOf(FieldTypeFloat)
}

// DateColumns returns the sorted names of all date fields.
func (s Schema) DateColumns() []string {
	return s.columnsOf(FieldTypeDate)
}

// Names returns all field names in sorted order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new schema with the fields of other layered over s.
func (s Schema) Merge(other Schema) Schema {
	out := make(Schema, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

func (s Schema) columnsOf(t FieldType) []string {
	var cols []string
	for name, ft := range s {
		if ft == t {
			cols = append(cols, name)
		}
	}
	sort.Strings(cols)
	return cols
}
