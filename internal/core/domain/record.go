package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// RecordKind identifies a concrete record variant.
type RecordKind string

// Available record kinds.
const (
	// KindProperty is a property (building) state.
	KindProperty RecordKind = "property"

	// KindTaxLot is a tax-lot state.
	KindTaxLot RecordKind = "taxlot"
)

// Geocoding result fields. They are merged as one unit.
const (
	FieldGeocodingConfidence = "geocoding_confidence"
	FieldLatitude            = "latitude"
	FieldLongitude           = "longitude"
	FieldLongLat             = "long_lat"
)

// ExtraDataField is the name of the schemaless bag on every record.
const ExtraDataField = "extra_data"

// GeocodingFields lists the geocoding result group in a fixed order.
var GeocodingFields = []string{
	FieldGeocodingConfidence,
	FieldLatitude,
	FieldLongitude,
	FieldLongLat,
}

// IsGeocodingField reports whether name belongs to the geocoding result group.
func IsGeocodingField(name string) bool {
	for _, f := range GeocodingFields {
		if f == name {
			return true
		}
	}
	return false
}

var propertyFields = []FieldDef{
	{"jurisdiction_property_id", FieldTypeString},
	{"pm_parent_property_id", FieldTypeString},
	{"pm_property_id", FieldTypeString},
	{"custom_id_1", FieldTypeString},
	{"ubid", FieldTypeString},
	{"home_energy_score_id", FieldTypeString},
	{"lot_number", FieldTypeString},
	{"property_name", FieldTypeString},
	{"address_line_1", FieldTypeString},
	{"address_line_2", FieldTypeString},
	{"normalized_address", FieldTypeString},
	{"city", FieldTypeString},
	{"state", FieldTypeString},
	{"postal_code", FieldTypeString},
	{"property_type", FieldTypeString},
	{"property_notes", FieldTypeString},
	{"use_description", FieldTypeString},
	{"building_certification", FieldTypeString},
	{"owner", FieldTypeString},
	{"owner_email", FieldTypeString},
	{"owner_telephone", FieldTypeString},
	{"owner_address", FieldTypeString},
	{"owner_city_state", FieldTypeString},
	{"owner_postal_code", FieldTypeString},
	{"energy_alerts", FieldTypeString},
	{"space_alerts", FieldTypeString},
	{"building_count", FieldTypeFloat},
	{"year_built", FieldTypeFloat},
	{"gross_floor_area", FieldTypeFloat},
	{"conditioned_floor_area", FieldTypeFloat},
	{"occupied_floor_area", FieldTypeFloat},
	{"energy_score", FieldTypeFloat},
	{"site_eui", FieldTypeFloat},
	{"site_eui_weather_normalized", FieldTypeFloat},
	{"source_eui", FieldTypeFloat},
	{"source_eui_weather_normalized", FieldTypeFloat},
	{"year_ending", FieldTypeDate},
	{"recent_sale_date", FieldTypeDate},
	{"generation_date", FieldTypeDate},
	{"release_date", FieldTypeDate},
	{FieldGeocodingConfidence, FieldTypeString},
	{FieldLatitude, FieldTypeFloat},
	{FieldLongitude, FieldTypeFloat},
	{FieldLongLat, FieldTypeString},
}

var taxLotFields = []FieldDef{
	{"jurisdiction_tax_lot_id", FieldTypeString},
	{"custom_id_1", FieldTypeString},
	{"ulid", FieldTypeString},
	{"block_number", FieldTypeString},
	{"district", FieldTypeString},
	{"address_line_1", FieldTypeString},
	{"address_line_2", FieldTypeString},
	{"normalized_address", FieldTypeString},
	{"city", FieldTypeString},
	{"state", FieldTypeString},
	{"postal_code", FieldTypeString},
	{"number_properties", FieldTypeFloat},
	{FieldGeocodingConfidence, FieldTypeString},
	{FieldLatitude, FieldTypeFloat},
	{FieldLongitude, FieldTypeFloat},
	{FieldLongLat, FieldTypeString},
}

// IsValid returns true if the record kind is recognised.
func (k RecordKind) IsValid() bool {
	return k == KindProperty || k == KindTaxLot
}

// String returns the string representation.
func (k RecordKind) String() string {
	return string(k)
}

// Fields returns the declared field table for the kind, or nil if unknown.
func (k RecordKind) Fields() []FieldDef {
	switch k {
	case KindProperty:
		return propertyFields
	case KindTaxLot:
		return taxLotFields
	default:
		return nil
	}
}

// Schema returns the kind's declared fields as a Schema.
func (k RecordKind) Schema() Schema {
	return NewSchema(k.Fields()...)
}

// ParseRecordKind converts user input into a RecordKind.
func ParseRecordKind(s string) (RecordKind, error) {
	switch s {
	case "property", "properties", "PropertyState":
		return KindProperty, nil
	case "taxlot", "taxlots", "tax_lot", "TaxLotState":
		return KindTaxLot, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRecordKind, s)
	}
}

// Record is the capability every state variant exposes to the mapper,
// reconciler and merge engine. Declared fields are addressed by name;
// anything else lives in extra data or the transient bag.
type Record interface {
	// Kind returns the record variant.
	Kind() RecordKind

	// ID returns the record identifier (empty until persisted).
	ID() string

	// SetID assigns the record identifier.
	SetID(id string)

	// FieldNames returns the declared scalar fields in declaration order.
	FieldNames() []string

	// HasField reports whether name is a declared scalar field.
	HasField(name string) bool

	// GetField returns a declared field value or a transient attribute.
	// The boolean is false when the name is neither.
	GetField(name string) (any, bool)

	// SetField writes a declared field. Undeclared names go to the
	// transient bag, which is never persisted.
	SetField(name string, value any)

	// ExtraData returns the schemaless bag. Never nil.
	ExtraData() map[string]any

	// SetExtraData replaces the schemaless bag.
	SetExtraData(data map[string]any)

	// Transient returns attributes written under undeclared names.
	Transient() map[string]any
}

// NewRecord creates an empty record of the given kind.
func NewRecord(kind RecordKind) (Record, error) {
	switch kind {
	case KindProperty:
		return NewPropertyState(), nil
	case KindTaxLot:
		return NewTaxLotState(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecordKind, kind)
	}
}

// stateBase holds the storage shared by every record variant.
type stateBase struct {
	id        string
	kind      RecordKind
	names     []string
	declared  map[string]struct{}
	values    map[string]any
	extra     map[string]any
	transient map[string]any

	// CreatedAt is when the state was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the state was last stored.
	UpdatedAt time.Time
}

func newStateBase(kind RecordKind) stateBase {
	defs := kind.Fields()
	b := stateBase{
		kind:      kind,
		names:     make([]string, len(defs)),
		declared:  make(map[string]struct{}, len(defs)),
		values:    make(map[string]any, len(defs)),
		extra:     make(map[string]any),
		transient: make(map[string]any),
	}
	for i, d := range defs {
		b.names[i] = d.Name
		b.declared[d.Name] = struct{}{}
	}
	return b
}

func (b *stateBase) Kind() RecordKind { return b.kind }

func (b *stateBase) ID() string { return b.id }

func (b *stateBase) SetID(id string) { b.id = id }

func (b *stateBase) FieldNames() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

func (b *stateBase) HasField(name string) bool {
	_, ok := b.declared[name]
	return ok
}

func (b *stateBase) GetField(name string) (any, bool) {
	if b.HasField(name) {
		return b.values[name], true
	}
	v, ok := b.transient[name]
	return v, ok
}

func (b *stateBase) SetField(name string, value any) {
	if b.HasField(name) {
		b.values[name] = value
		return
	}
	b.transient[name] = value
}

func (b *stateBase) ExtraData() map[string]any {
	if b.extra == nil {
		b.extra = make(map[string]any)
	}
	return b.extra
}

func (b *stateBase) SetExtraData(data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	b.extra = data
}

func (b *stateBase) Transient() map[string]any {
	return b.transient
}

// Values returns a copy of the populated declared fields.
func (b *stateBase) Values() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// TaxLotState is a tax-lot record at one point in time.
type TaxLotState struct {
	stateBase
}

// NewTaxLotState creates an empty tax-lot state.
func NewTaxLotState() *TaxLotState {
	return &TaxLotState{stateBase: newStateBase(KindTaxLot)}
}

// PropertyState is a property record at one point in time. Unlike
// tax lots, properties carry measures, scenarios, simulations and
// building files.
type PropertyState struct {
	stateBase

	// Measures are energy conservation measures attached to this state.
	Measures []Measure

	// Scenarios group measures into packages.
	Scenarios []Scenario

	// Simulations reference scenarios of this state.
	Simulations []Simulation

	// BuildingFiles are the source files (e.g. BuildingSync XML) of this state.
	BuildingFiles []BuildingFile
}

// NewPropertyState creates an empty property state.
func NewPropertyState() *PropertyState {
	return &PropertyState{stateBase: newStateBase(KindProperty)}
}

// Ensure both variants implement Record.
var (
	_ Record = (*PropertyState)(nil)
	_ Record = (*TaxLotState)(nil)
)

// IsBlank reports whether a value counts as absent: nil or an empty string.
func IsBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}

// DecodeExtraData converts an extra-data value from the persistence
// boundary into the in-memory map form. JSON strings and bytes are parsed.
func DecodeExtraData(v any) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return make(map[string]any), nil
	case map[string]any:
		return t, nil
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out, nil
	case string:
		return decodeExtraDataJSON([]byte(t))
	case []byte:
		return decodeExtraDataJSON(t)
	default:
		return nil, fmt.Errorf("%w: extra data of type %T", ErrInvalidInput, v)
	}
}

func decodeExtraDataJSON(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return make(map[string]any), nil
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: extra data: %w", ErrInvalidInput, err)
	}
	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

// SortedKeys returns the keys of m in sorted order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PropertySchema returns the declared schema of property states.
func PropertySchema() Schema { return KindProperty.Schema() }

// TaxLotSchema returns the declared schema of tax-lot states.
func TaxLotSchema() Schema { return KindTaxLot.Schema() }

// RecordFilter is a predicate over records that can also be evaluated
// by a SQL store against a JSON data column.
type RecordFilter interface {
	Match(rec Record) bool
	SQL() (string, []any)
}

// PopulatedFields returns the non-blank declared fields of rec.
func PopulatedFields(rec Record) map[string]any {
	out := make(map[string]any)
	for _, name := range rec.FieldNames() {
		if v, _ := rec.GetField(name); !IsBlank(v) {
			out[name] = v
		}
	}
	return out
}
