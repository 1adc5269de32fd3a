// Package config holds the settings table shared by the config store
// adapters. Settings are addressed by flat dot-notation keys such as
// "merge.priorities.site_eui"; adapters decide how the table is persisted.
//
// # Import Rules
//
// This package may import only the standard library. Store adapters
// (config/file, storage/memory) embed Values to satisfy the typed
// getters of driven.ConfigStore.
package config

import (
	"sort"
	"strings"
	"sync"
)

// Values is a concurrency-safe table of settings.
type Values struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewValues creates a table seeded with data. A nil map starts empty.
func NewValues(data map[string]any) *Values {
	if data == nil {
		data = make(map[string]any)
	}
	return &Values{data: data}
}

// Get returns the raw value stored under key.
func (v *Values) Get(key string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.data[key]
	return val, ok
}

// GetString returns the value under key if it is a string.
func (v *Values) GetString(key string) string {
	s, _ := lookup(v, key, asString)
	return s
}

// GetInt returns the value under key as an int. Floats are truncated.
func (v *Values) GetInt(key string) int {
	n, _ := lookup(v, key, asInt)
	return n
}

// GetFloat returns the value under key as a float64.
func (v *Values) GetFloat(key string) float64 {
	f, _ := lookup(v, key, asFloat)
	return f
}

// GetBool returns the value under key if it is a bool.
func (v *Values) GetBool(key string) bool {
	b, _ := lookup(v, key, asBool)
	return b
}

// GetStringSlice returns the string elements of a list value.
// Non-string elements are skipped; a missing or scalar value gives nil.
func (v *Values) GetStringSlice(key string) []string {
	s, _ := lookup(v, key, asStrings)
	return s
}

// Keys returns the sorted keys that start with prefix.
func (v *Values) Keys(prefix string) []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var keys []string
	for k := range v.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Put stores value under key.
func (v *Values) Put(key string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data[key] = value
}

// Remove deletes key and reports whether it was present.
func (v *Values) Remove(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.data[key]; !ok {
		return false
	}
	delete(v.data, key)
	return true
}

// Replace swaps the whole table for data.
func (v *Values) Replace(data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data = data
}

// Snapshot returns a shallow copy of the table.
func (v *Values) Snapshot() map[string]any {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]any, len(v.data))
	for k, val := range v.data {
		out[k] = val
	}
	return out
}

// Len returns the number of stored keys.
func (v *Values) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.data)
}

func lookup[T any](v *Values, key string, conv func(any) (T, bool)) (T, bool) {
	val, ok := v.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	return conv(val)
}

func asString(val any) (string, bool) {
	s, ok := val.(string)
	return s, ok
}

func asBool(val any) (bool, bool) {
	b, ok := val.(bool)
	return b, ok
}

// asInt accepts int64 as well since TOML decodes integers that way.
func asInt(val any) (int, bool) {
	switch n := val.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(val any) (float64, bool) {
	switch n := val.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asStrings(val any) ([]string, bool) {
	switch list := val.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
