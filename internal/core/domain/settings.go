package domain

// DefaultMappingThreshold is the fuzzy score a column match must exceed.
const DefaultMappingThreshold = 0

// DefaultMatchConfidence is the minimum reconcile confidence for a match to be reported.
const DefaultMatchConfidence = 0.5

// MergeSettings bundles the per-organisation merge configuration.
type MergeSettings struct {
	// Priorities decides conflicts per field and per extra-data key.
	Priorities PriorityConfig

	// RecognizeEmpty lists fields whose blank value may still win.
	RecognizeEmpty RecognizeEmpty

	// IgnoreMergeProtection makes the new state win every conflict.
	IgnoreMergeProtection bool
}

// MappingSettings holds column mapping behaviour.
type MappingSettings struct {
	// Threshold is the score a fuzzy match must exceed to be accepted.
	Threshold int
}

// MatchSettings holds reconcile behaviour.
type MatchSettings struct {
	// MinConfidence is the lowest confidence reported as a match, in [0,1].
	MinConfidence float64
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Merge holds merge priorities and recognize-empty fields.
	Merge MergeSettings

	// Mapping holds column mapping settings.
	Mapping MappingSettings

	// Match holds reconcile settings.
	Match MatchSettings
}

// DefaultMergeSettings returns settings where every field favours new.
func DefaultMergeSettings() MergeSettings {
	return MergeSettings{
		Priorities:     NewPriorityConfig(),
		RecognizeEmpty: NewRecognizeEmpty(nil, nil),
	}
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Merge: DefaultMergeSettings(),
		Mapping: MappingSettings{
			Threshold: DefaultMappingThreshold,
		},
		Match: MatchSettings{
			MinConfidence: DefaultMatchConfidence,
		},
	}
}
