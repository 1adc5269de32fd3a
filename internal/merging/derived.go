package merging

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// DerivedRule computes one field from other fields of the merged record.
type DerivedRule struct {
	// Output is the field the rule writes.
	Output string

	// Inputs are the fields read, in the order passed to Derive.
	Inputs []string

	// Derive computes the output value.
	Derive func(inputs []any) any
}

// DefaultDerivedRules returns the rules applied when none are configured.
func DefaultDerivedRules() []DerivedRule {
	return []DerivedRule{
		{
			Output: "normalized_address",
			Inputs: []string{"address_line_1"},
			Derive: func(in []any) any {
				s, ok := in[0].(string)
				if !ok || s == "" {
					return nil
				}
				return NormalizeAddress(s)
			},
		},
	}
}

func applyDerivedRules(merged domain.Record, rules []DerivedRule) {
	for _, r := range rules {
		if !merged.HasField(r.Output) || r.Derive == nil {
			continue
		}
		inputs := make([]any, len(r.Inputs))
		for i, name := range r.Inputs {
			inputs[i], _ = merged.GetField(name)
		}
		merged.SetField(r.Output, r.Derive(inputs))
	}
}

var (
	addressPunct = regexp.MustCompile(`[^a-z0-9#\s]`)
	addressSpace = regexp.MustCompile(`\s+`)
)

var addressAbbreviations = map[string]string{
	"street":    "st",
	"avenue":    "ave",
	"boulevard": "blvd",
	"road":      "rd",
	"lane":      "ln",
	"drive":     "dr",
	"court":     "ct",
	"place":     "pl",
	"square":    "sq",
	"parkway":   "pkwy",
	"highway":   "hwy",
	"suite":     "ste",
	"apartment": "apt",
	"north":     "n",
	"south":     "s",
	"east":      "e",
	"west":      "w",
	"northeast": "ne",
	"northwest": "nw",
	"southeast": "se",
	"southwest": "sw",
}

// NormalizeAddress lowercases an address, drops punctuation and
// abbreviates street suffixes and directions.
func NormalizeAddress(address string) string {
	s := strings.ToLower(address)
	s = addressPunct.ReplaceAllString(s, "")
	s = addressSpace.ReplaceAllString(s, " ")

	tokens := strings.Fields(s)
	for i, t := range tokens {
		if abbr, ok := addressAbbreviations[t]; ok {
			tokens[i] = abbr
		}
	}
	return strings.Join(tokens, " ")
}
