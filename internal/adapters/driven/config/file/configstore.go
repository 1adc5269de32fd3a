package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/seedmerge/internal/adapters/driven/config"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	configFileName = "config.toml"
	defaultDirName = ".seedmerge"
	dirPerm        = 0o700
	filePerm       = 0o600
)

// ConfigStore persists settings to a TOML file. Every mutation rewrites
// the file, with dotted keys written back as nested tables:
//
//	[merge.priorities]
//	site_eui = "Favor Existing"
type ConfigStore struct {
	*config.Values

	// writeMu serialises mutate-then-write sequences.
	writeMu  sync.Mutex
	filePath string
}

// NewConfigStore opens config.toml under configDir, creating the directory
// if needed. An empty configDir means ~/.seedmerge.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, defaultDirName)
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{
		Values:   config.NewValues(nil),
		filePath: filepath.Join(configDir, configFileName),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Set stores value under key and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.Put(key, value)
	return s.write()
}

// Delete removes key and rewrites the file. Missing keys leave the file untouched.
func (s *ConfigStore) Delete(key string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if !s.Remove(key) {
		return nil
	}
	return s.write()
}

// Save rewrites the file from the in-memory table.
func (s *ConfigStore) Save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.write()
}

// Load replaces the in-memory table with the file contents.
// A missing file yields an empty table.
func (s *ConfigStore) Load() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		s.Replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.filePath, err)
	}

	var tree map[string]any
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	s.Replace(flatten(tree))
	return nil
}

// Path returns the config file location.
func (s *ConfigStore) Path() string {
	return s.filePath
}

func (s *ConfigStore) write() error {
	raw, err := toml.Marshal(nest(s.Snapshot()))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.filePath, raw, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", s.filePath, err)
	}
	return nil
}
