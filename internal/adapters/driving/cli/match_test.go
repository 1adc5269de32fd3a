package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

func saveProperty(t *testing.T, env *testEnv, id string, fields map[string]any) {
	t.Helper()
	p := domain.NewPropertyState()
	p.SetID(id)
	for k, v := range fields {
		p.SetField(k, v)
	}
	require.NoError(t, env.states.Save(context.Background(), p))
}

func TestMatchCmd(t *testing.T) {
	env := setupServices(t)
	saveProperty(t, env, "p1", map[string]any{"address_line_1": "123 Main St", "city": "Denver"})
	saveProperty(t, env, "p2", map[string]any{"address_line_1": "500 Oak Ave", "city": "Boulder"})
	saveProperty(t, env, "p3", map[string]any{"address_line_1": "123 Main St", "city": "Denver"})

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "match", "p3")

		require.NoError(t, err)
		assert.Contains(t, out, "Best match for p3: p1 (confidence 1.000, 1 candidates)")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "match", "p3", "--json")
		require.NoError(t, err)

		var result domain.MatchResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "p1", result.MatchID)
	})

	t.Run("no match", func(t *testing.T) {
		out, err := execute(t, "match", "p2")

		require.NoError(t, err)
		assert.Contains(t, out, "No match found for p2")
	})

	t.Run("missing state", func(t *testing.T) {
		_, err := execute(t, "match", "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMergeCmd(t *testing.T) {
	t.Run("favors new by default", func(t *testing.T) {
		env := setupServices(t)
		saveProperty(t, env, "p1", map[string]any{"city": "Denver", "site_eui": 50.0})
		saveProperty(t, env, "p2", map[string]any{"city": "Boulder"})

		out, err := execute(t, "merge", "p1", "p2")

		require.NoError(t, err)
		assert.Contains(t, out, "Merged p1 and p2")
		assert.Contains(t, out, "city: Boulder")
		assert.Contains(t, out, "site_eui: 50")

		list, err := env.states.List(context.Background(), domain.KindProperty)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("honours configured priority", func(t *testing.T) {
		env := setupServices(t)
		saveProperty(t, env, "p1", map[string]any{"city": "Denver"})
		saveProperty(t, env, "p2", map[string]any{"city": "Boulder"})

		_, err := execute(t, "settings", "priority", "city", "existing")
		require.NoError(t, err)

		out, err := execute(t, "merge", "p1", "p2", "--json")
		require.NoError(t, err)

		var state stateJSON
		require.NoError(t, json.Unmarshal([]byte(out), &state))
		assert.Equal(t, "Denver", state.Fields["city"])
		assert.NotEmpty(t, state.ID)
	})

	t.Run("same state", func(t *testing.T) {
		setupServices(t)

		_, err := execute(t, "merge", "p1", "p1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("requires two ids", func(t *testing.T) {
		setupServices(t)

		_, err := execute(t, "merge", "p1")
		assert.Error(t, err)
	})
}
