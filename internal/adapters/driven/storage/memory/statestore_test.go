package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

type cityFilter string

func (f cityFilter) Match(rec domain.Record) bool {
	v, _ := rec.GetField("city")
	return v == string(f)
}

func (f cityFilter) SQL() (string, []any) { return "1", nil }

func newProperty(id, city string) domain.Record {
	p := domain.NewPropertyState()
	p.SetID(id)
	p.SetField("city", city)
	return p
}

func TestStateStore_SaveAssignsID(t *testing.T) {
	store := NewStateStore()
	rec := domain.NewTaxLotState()

	require.NoError(t, store.Save(context.Background(), rec))
	assert.NotEmpty(t, rec.ID())

	got, err := store.Get(context.Background(), domain.KindTaxLot, rec.ID())
	require.NoError(t, err)
	assert.Same(t, rec, got)
}

func TestStateStore_SaveNil(t *testing.T) {
	err := NewStateStore().Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStateStore_Get_NotFound(t *testing.T) {
	store := NewStateStore()
	require.NoError(t, store.Save(context.Background(), newProperty("p1", "Denver")))

	_, err := store.Get(context.Background(), domain.KindTaxLot, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStateStore_ListKeepsInsertionOrder(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Save(ctx, newProperty(id, "Denver")))
	}
	// Updating does not move a state.
	require.NoError(t, store.Save(ctx, newProperty("c", "Boulder")))

	list, err := store.List(ctx, domain.KindProperty)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID())
	assert.Equal(t, "a", list[1].ID())
	assert.Equal(t, "b", list[2].ID())

	lots, err := store.List(ctx, domain.KindTaxLot)
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestStateStore_Search(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newProperty("p1", "Denver")))
	require.NoError(t, store.Save(ctx, newProperty("p2", "Boulder")))
	require.NoError(t, store.Save(ctx, newProperty("p3", "Denver")))

	got, err := store.Search(ctx, domain.KindProperty, cityFilter("Denver"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID())
	assert.Equal(t, "p3", got[1].ID())
}

func TestStateStore_Delete(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newProperty("p1", "Denver")))
	require.NoError(t, store.Save(ctx, newProperty("p2", "Denver")))

	require.NoError(t, store.Delete(ctx, domain.KindProperty, "p1"))
	require.NoError(t, store.Delete(ctx, domain.KindProperty, "missing"))

	_, err := store.Get(ctx, domain.KindProperty, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.List(ctx, domain.KindProperty)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID())
}
