package driving

import "github.com/custodia-labs/seedmerge/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetPriority sets the merge priority of a declared field, or of an
	// extra-data key when extra is true.
	SetPriority(field string, extra bool, priority domain.MergePriority) error

	// SetRecognizeEmpty adds or removes a field from the recognize-empty set.
	SetRecognizeEmpty(field string, extra bool, enabled bool) error

	// SetIgnoreMergeProtection toggles new-always-wins merging.
	SetIgnoreMergeProtection(ignore bool) error

	// SetMappingThreshold sets the fuzzy score a column match must exceed.
	SetMappingThreshold(threshold int) error

	// SetMinConfidence sets the lowest reconcile confidence reported as a match.
	SetMinConfidence(confidence float64) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
