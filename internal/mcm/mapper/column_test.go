package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/mcm/matchers"
)

var (
	rawColumns  = []string{"Address", "Name", "City", "BBL", "Building ID"}
	destColumns = []string{"address_line_1", "name", "city", "tax_lot_id", "custom_id_1"}
)

// TestBuildColumnMapping_EndToEnd tests the documented scores for a known file
func TestBuildColumnMapping_EndToEnd(t *testing.T) {
	result := BuildColumnMapping(rawColumns, destColumns)

	require.Len(t, result, len(rawColumns))
	assert.Equal(t, domain.MappedTo("city", 100), result["City"])
	assert.Equal(t, domain.MappedTo("name", 100), result["Name"])
	assert.Equal(t, domain.MappedTo("address_line_1", 67), result["Address"])
	assert.Equal(t, domain.MappedTo("tax_lot_id", 15), result["BBL"])
	assert.True(t, result["Building ID"].Mapped)
}

// TestBuildColumnMapping_Deterministic tests repeated calls give identical output
func TestBuildColumnMapping_Deterministic(t *testing.T) {
	first := BuildColumnMapping(rawColumns, destColumns)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildColumnMapping(rawColumns, destColumns))
	}
}

// TestBuildColumnMapping_PreviousMappingWins tests saved mappings take precedence
func TestBuildColumnMapping_PreviousMappingWins(t *testing.T) {
	previous := func(raw string) (domain.MappingEntry, bool) {
		switch raw {
		case "City":
			return domain.Unmapped(1), true
		case "BBL":
			return domain.MappedTo("custom_id_1", 90), true
		default:
			return domain.MappingEntry{}, false
		}
	}

	result := BuildColumnMapping(rawColumns, destColumns, WithPreviousMapping(previous))

	assert.Equal(t, domain.Unmapped(1), result["City"])
	assert.Equal(t, domain.MappedTo("custom_id_1", 90), result["BBL"])
	assert.Equal(t, domain.MappedTo("name", 100), result["Name"])
}

// TestBuildColumnMapping_DefaultMappings tests fixed mappings between saved and fuzzy ones
func TestBuildColumnMapping_DefaultMappings(t *testing.T) {
	defaults := map[string]domain.MappingEntry{
		"BBL":  domain.MappedTo("tax_lot_id", 100),
		"City": domain.MappedTo("name", 100),
	}
	previous := func(raw string) (domain.MappingEntry, bool) {
		if raw == "City" {
			return domain.MappedTo("city", 100), true
		}
		return domain.MappingEntry{}, false
	}

	result := BuildColumnMapping(rawColumns, destColumns,
		WithDefaultMappings(defaults), WithPreviousMapping(previous))

	assert.Equal(t, domain.MappedTo("tax_lot_id", 100), result["BBL"])
	assert.Equal(t, domain.MappedTo("city", 100), result["City"])
}

// TestBuildColumnMapping_Threshold tests that scores must exceed the threshold
func TestBuildColumnMapping_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		address   domain.MappingEntry
		city      domain.MappingEntry
	}{
		{name: "zero", threshold: 0, address: domain.MappedTo("address_line_1", 67), city: domain.MappedTo("city", 100)},
		{name: "just below", threshold: 66, address: domain.MappedTo("address_line_1", 67), city: domain.MappedTo("city", 100)},
		{name: "equal", threshold: 67, address: domain.Unmapped(0), city: domain.MappedTo("city", 100)},
		{name: "above all", threshold: 100, address: domain.Unmapped(0), city: domain.Unmapped(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildColumnMapping(rawColumns, destColumns, WithThreshold(tt.threshold))
			assert.Equal(t, tt.address, result["Address"])
			assert.Equal(t, tt.city, result["City"])
		})
	}
}

// TestBuildColumnMapping_NoMatch tests columns with nothing in common
func TestBuildColumnMapping_NoMatch(t *testing.T) {
	result := BuildColumnMapping([]string{"zzz", "zzz"}, destColumns)

	require.Len(t, result, 1)
	assert.Equal(t, domain.Unmapped(0), result["zzz"])

	result = BuildColumnMapping([]string{"City"}, nil)
	assert.Equal(t, domain.Unmapped(0), result["City"])
}

// TestBuildColumnMapping_Similarity tests a pluggable similarity
func TestBuildColumnMapping_Similarity(t *testing.T) {
	exact := matchers.SimilarityFunc(func(a, b string) int {
		if a == b {
			return 100
		}
		return 0
	})

	result := BuildColumnMapping([]string{"city", "City"}, destColumns, WithSimilarity(exact))

	assert.Equal(t, domain.MappedTo("city", 100), result["city"])
	assert.Equal(t, domain.Unmapped(0), result["City"])
}
