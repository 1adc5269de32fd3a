package reconcile

import (
	"fmt"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// Names of the built-in correspondence lists.
const (
	PropertyMapping       = "property"
	TaxLotMapping         = "taxlot"
	PropertyTaxLotMapping = "property_taxlot"
)

// Correspondence pairs a field of the known record with a field of the candidate.
type Correspondence struct {
	Known     string
	Candidate string

	// Address splits the known value into a street number and words
	// before building predicates.
	Address bool
}

var correspondences = map[string][]Correspondence{
	PropertyMapping: {
		{Known: "pm_property_id", Candidate: "pm_property_id"},
		{Known: "jurisdiction_property_id", Candidate: "jurisdiction_property_id"},
		{Known: "custom_id_1", Candidate: "custom_id_1"},
		{Known: "ubid", Candidate: "ubid"},
		{Known: "address_line_1", Candidate: "address_line_1", Address: true},
		{Known: "city", Candidate: "city"},
		{Known: "postal_code", Candidate: "postal_code"},
	},
	TaxLotMapping: {
		{Known: "jurisdiction_tax_lot_id", Candidate: "jurisdiction_tax_lot_id"},
		{Known: "custom_id_1", Candidate: "custom_id_1"},
		{Known: "ulid", Candidate: "ulid"},
		{Known: "address_line_1", Candidate: "address_line_1", Address: true},
		{Known: "city", Candidate: "city"},
		{Known: "postal_code", Candidate: "postal_code"},
	},
	PropertyTaxLotMapping: {
		{Known: "lot_number", Candidate: "jurisdiction_tax_lot_id"},
		{Known: "address_line_1", Candidate: "address_line_1", Address: true},
		{Known: "city", Candidate: "city"},
		{Known: "postal_code", Candidate: "postal_code"},
	},
}

// Correspondences returns the named correspondence list.
func Correspondences(name string) ([]Correspondence, error) {
	list, ok := correspondences[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCorrespondence, name)
	}
	out := make([]Correspondence, len(list))
	copy(out, list)
	return out, nil
}

// MappingFor returns the correspondence list name for matching a record
// of kind known against candidates of kind candidate.
func MappingFor(known, candidate domain.RecordKind) (string, error) {
	switch {
	case known == domain.KindProperty && candidate == domain.KindProperty:
		return PropertyMapping, nil
	case known == domain.KindTaxLot && candidate == domain.KindTaxLot:
		return TaxLotMapping, nil
	case known == domain.KindProperty && candidate == domain.KindTaxLot:
		return PropertyTaxLotMapping, nil
	default:
		return "", fmt.Errorf("%w: %s to %s", domain.ErrUnknownCorrespondence, known, candidate)
	}
}
