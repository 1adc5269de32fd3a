package memory

import (
	"github.com/custodia-labs/seedmerge/internal/adapters/driven/config"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in process memory. Save and Load do nothing,
// so a fresh store always starts from the defaults.
type ConfigStore struct {
	*config.Values
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{Values: config.NewValues(nil)}
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.Put(key, value)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *ConfigStore) Delete(key string) error {
	s.Remove(key)
	return nil
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }
