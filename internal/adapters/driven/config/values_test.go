package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_TypedGetters(t *testing.T) {
	v := NewValues(map[string]any{
		"mapping.threshold":       int64(75),
		"match.min_confidence":    0.6,
		"merge.ignore_protection": true,
		"merge.recognize_empty":   []any{"owner", 3, "city"},
		"merge.priorities.city":   "Favor Existing",
	})

	assert.Equal(t, 75, v.GetInt("mapping.threshold"))
	assert.InDelta(t, 75, v.GetFloat("mapping.threshold"), 1e-9)
	assert.InDelta(t, 0.6, v.GetFloat("match.min_confidence"), 1e-9)
	assert.Equal(t, 0, v.GetInt("match.min_confidence"))
	assert.True(t, v.GetBool("merge.ignore_protection"))
	assert.Equal(t, []string{"owner", "city"}, v.GetStringSlice("merge.recognize_empty"))
	assert.Equal(t, "Favor Existing", v.GetString("merge.priorities.city"))

	assert.Empty(t, v.GetString("mapping.threshold"))
	assert.False(t, v.GetBool("merge.priorities.city"))
	assert.Nil(t, v.GetStringSlice("merge.priorities.city"))
	assert.Zero(t, v.GetFloat("missing"))
}

func TestValues_KeysPutRemove(t *testing.T) {
	v := NewValues(nil)
	v.Put("merge.priorities.site_eui", "Favor New")
	v.Put("merge.priorities.city", "Favor Existing")
	v.Put("mapping.threshold", 50)

	assert.Equal(t, []string{"merge.priorities.city", "merge.priorities.site_eui"}, v.Keys("merge.priorities."))
	assert.Equal(t, 3, v.Len())

	assert.True(t, v.Remove("mapping.threshold"))
	assert.False(t, v.Remove("mapping.threshold"))
	assert.Equal(t, 2, v.Len())
}

func TestValues_SnapshotIsACopy(t *testing.T) {
	v := NewValues(nil)
	v.Put("a", 1)

	snap := v.Snapshot()
	snap["b"] = 2

	_, ok := v.Get("b")
	assert.False(t, ok)
}

func TestValues_Replace(t *testing.T) {
	v := NewValues(map[string]any{"a": 1})
	v.Replace(map[string]any{"b": 2})

	_, ok := v.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, v.GetInt("b"))

	v.Replace(nil)
	assert.Zero(t, v.Len())
	v.Put("c", "ok")
	assert.Equal(t, "ok", v.GetString("c"))
}
