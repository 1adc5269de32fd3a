package merging

import "github.com/custodia-labs/seedmerge/internal/core/domain"

// mergeGeocoding copies the whole geocoding group from one side.
// A side with no geocoding data never wins over a populated one,
// whatever the priority.
func mergeGeocoding(merged, state1, state2 domain.Record, priorities domain.PriorityConfig, cfg *config) {
	empty1 := geocodingEmpty(state1)
	empty2 := geocodingEmpty(state2)

	var src domain.Record
	switch {
	case empty1 && empty2:
		src = state1
	case empty1:
		src = state2
	case empty2:
		src = state1
	case !cfg.ignoreProtection && priorities.Field(domain.FieldGeocodingConfidence) == domain.FavorExisting:
		src = state1
	default:
		src = state2
	}

	values := make([]any, len(domain.GeocodingFields))
	for i, f := range domain.GeocodingFields {
		values[i], _ = src.GetField(f)
	}
	for i, f := range domain.GeocodingFields {
		merged.SetField(f, values[i])
	}

	if src == state1 {
		log.Debug("geocoding taken from existing state")
	} else {
		log.Debug("geocoding taken from new state")
	}
}

func geocodingEmpty(rec domain.Record) bool {
	for _, f := range domain.GeocodingFields {
		if v, _ := rec.GetField(f); !domain.IsBlank(v) {
			return false
		}
	}
	return true
}
