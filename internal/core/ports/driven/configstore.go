package driven

// ConfigReader reads settings addressed by dot-notation keys such as
// "merge.priorities.site_eui". Typed getters return the zero value when the
// key is missing or holds another type; use Get to tell the two apart.
type ConfigReader interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int

	// GetFloat also accepts integer values.
	GetFloat(key string) float64
	GetBool(key string) bool

	// GetStringSlice skips non-string elements of a list.
	GetStringSlice(key string) []string

	// Keys returns the sorted keys that start with prefix.
	Keys(prefix string) []string
}

// ConfigStore is a ConfigReader whose writes are persisted as they happen.
type ConfigStore interface {
	ConfigReader

	Set(key string, value any) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Save rewrites storage from the current values.
	Save() error

	// Load replaces the current values with what storage holds.
	Load() error

	// Path describes where the values live, ":memory:" for the in-process store.
	Path() string
}
