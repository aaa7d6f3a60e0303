package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gads/pkg/ads"
	"github.com/mesh-intelligence/gads/pkg/memory"
	"github.com/mesh-intelligence/gads/pkg/simple"
	"github.com/mesh-intelligence/gads/pkg/types"
)

func savedList(t *testing.T, store types.Store) *ads.DLList {
	t.Helper()
	l := ads.NewDLList(store, uniqueName("list"))
	require.NoError(t, l.Save(context.Background()))
	t.Cleanup(func() {
		ctx := context.Background()
		_ = l.Clear(ctx)
		_ = l.Destroy(ctx)
	})
	return l
}

func TestDLListAppendIndexRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	l := savedList(t, store)

	elements := make([]*simple.Integer, 5)
	for i := range elements {
		elements[i] = savedInteger(t, store, int64(i*10))
		require.NoError(t, l.Append(ctx, elements[i]))
	}

	n, err := l.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)

	for i := range elements {
		got, err := l.Get(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, elements[i].ElementName(), got.ElementName(), "index %d", i)
	}

	last, err := l.Get(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, elements[4].ElementName(), last.ElementName())

	first, err := l.Get(ctx, -5)
	require.NoError(t, err)
	assert.Equal(t, elements[0].ElementName(), first.ElementName())

	_, err = l.Get(ctx, 5)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestDLListRemoveSplices(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	l := savedList(t, store)
	elements := make([]*simple.Integer, 4)
	for i := range elements {
		elements[i] = savedInteger(t, store, int64(i))
		require.NoError(t, l.Append(ctx, elements[i]))
	}

	// Inner removal: the neighbours close ranks.
	require.NoError(t, l.Remove(ctx, 1))
	got, err := l.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, elements[2].ElementName(), got.ElementName())

	// Endpoint removal: the tail anchor moves.
	require.NoError(t, l.Remove(ctx, -1))
	last, err := l.Get(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, elements[2].ElementName(), last.ElementName())

	n, err := l.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// The spliced-out elements survive their wrappers.
	require.NoError(t, elements[1].Load(ctx))
}

func TestDLListMergeLaw(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	u := savedList(t, store)
	v := ads.NewDLList(store, uniqueName("list"))
	require.NoError(t, v.Save(ctx))

	for i := 0; i < 3; i++ {
		require.NoError(t, u.Append(ctx, savedInteger(t, store, int64(i))))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, v.Append(ctx, savedInteger(t, store, int64(10+i))))
	}

	mergedName := v.ElementName()
	require.NoError(t, u.ExtendByMerging(ctx, v))

	n, err := u.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	item, err := u.Get(ctx, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, item.ElementName())

	_, err = memory.NewManager(store).GetObject(ctx, mergedName)
	assert.ErrorIs(t, err, types.ErrObjectNotFound, "the merged-away name stops resolving")
}

func TestDLListFromQuery(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	a := savedInteger(t, store, 3)
	b := savedInteger(t, store, 1)
	c := savedInteger(t, store, 2)

	l := savedList(t, store)
	fragment := fmt.Sprintf(
		"MATCH (item:PersistentElement:SimpleInteger) WHERE item.name IN ['%s', '%s', '%s'] WITH item ORDER BY item.value",
		a.ElementName(), b.ElementName(), c.ElementName())

	n, err := l.FromQuery(ctx, fragment)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	// The chain follows the fragment's ordering.
	for i, want := range []string{b.ElementName(), c.ElementName(), a.ElementName()} {
		got, err := l.Get(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, want, got.ElementName(), "index %d", i)
	}

	_, err = l.FromQuery(ctx, fragment)
	assert.ErrorIs(t, err, types.ErrContainerNotEmpty)
}

func TestDLListDestroyGuard(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	l := savedList(t, store)
	require.NoError(t, l.Append(ctx, savedInteger(t, store, 1)))

	assert.ErrorIs(t, l.Destroy(ctx), types.ErrDestroyNonEmpty)
	require.NoError(t, l.Clear(ctx))
	require.NoError(t, l.Destroy(ctx))
}
