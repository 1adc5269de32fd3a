package domain

import (
	"encoding/json"
	"fmt"
)

// MergePriority decides which side wins when both states carry a value.
type MergePriority string

// Available merge priorities.
const (
	// FavorNew takes the value of the incoming (new) state.
	FavorNew MergePriority = "Favor New"

	// FavorExisting takes the value of the stored (existing) state.
	FavorExisting MergePriority = "Favor Existing"
)

// IsValid returns true if the priority is recognised.
func (p MergePriority) IsValid() bool {
	return p == FavorNew || p == FavorExisting
}

// String returns the string representation.
func (p MergePriority) String() string {
	return string(p)
}

// ParseMergePriority converts a stored or user-supplied string into a priority.
func ParseMergePriority(s string) (MergePriority, error) {
	p := MergePriority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// PriorityConfig holds per-field merge priorities. Fields not listed
// favour the new state.
//
// It serialises as {field: priority, ..., "extra_data": {key: priority}}.
type PriorityConfig struct {
	// Fields covers declared scalar fields.
	Fields map[string]MergePriority

	// ExtraData covers extra-data keys.
	ExtraData map[string]MergePriority
}

// NewPriorityConfig creates an empty configuration (everything favours new).
func NewPriorityConfig() PriorityConfig {
	return PriorityConfig{
		Fields:    make(map[string]MergePriority),
		ExtraData: make(map[string]MergePriority),
	}
}

// Field returns the priority of a declared field.
func (c PriorityConfig) Field(name string) MergePriority {
	if p, ok := c.Fields[name]; ok {
		return p
	}
	return FavorNew
}

// Extra returns the priority of an extra-data key.
func (c PriorityConfig) Extra(key string) MergePriority {
	if p, ok := c.ExtraData[key]; ok {
		return p
	}
	return FavorNew
}

// MarshalJSON encodes the configuration in its stable shape.
func (c PriorityConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Fields)+1)
	for k, v := range c.Fields {
		out[k] = v
	}
	extra := make(map[string]MergePriority, len(c.ExtraData))
	for k, v := range c.ExtraData {
		extra[k] = v
	}
	out[ExtraDataField] = extra
	return json.Marshal(out)
}

// UnmarshalJSON decodes the stable shape and validates every priority.
func (c *PriorityConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: priorities: %w", ErrInvalidInput, err)
	}

	cfg := NewPriorityConfig()
	for key, val := range raw {
		if key == ExtraDataField {
			var extra map[string]string
			if err := json.Unmarshal(val, &extra); err != nil {
				return fmt.Errorf("%w: extra_data priorities: %w", ErrInvalidInput, err)
			}
			for k, s := range extra {
				p, err := ParseMergePriority(s)
				if err != nil {
					return err
				}
				cfg.ExtraData[k] = p
			}
			continue
		}

		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return fmt.Errorf("%w: priority for %s: %w", ErrInvalidInput, key, err)
		}
		p, err := ParseMergePriority(s)
		if err != nil {
			return err
		}
		cfg.Fields[key] = p
	}

	*c = cfg
	return nil
}

// RecognizeEmpty lists fields whose blank value may still win a merge.
type RecognizeEmpty struct {
	Fields    map[string]struct{}
	ExtraData map[string]struct{}
}

// NewRecognizeEmpty builds the set from declared field names and extra-data keys.
func NewRecognizeEmpty(fields, extraData []string) RecognizeEmpty {
	r := RecognizeEmpty{
		Fields:    make(map[string]struct{}, len(fields)),
		ExtraData: make(map[string]struct{}, len(extraData)),
	}
	for _, f := range fields {
		r.Fields[f] = struct{}{}
	}
	for _, k := range extraData {
		r.ExtraData[k] = struct{}{}
	}
	return r
}

// HasField reports whether a declared field recognises empty values.
func (r RecognizeEmpty) HasField(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// HasExtra reports whether an extra-data key recognises empty values.
func (r RecognizeEmpty) HasExtra(key string) bool {
	_, ok := r.ExtraData[key]
	return ok
}
