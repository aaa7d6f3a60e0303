package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gads/pkg/ads"
	"github.com/mesh-intelligence/gads/pkg/composite"
	"github.com/mesh-intelligence/gads/pkg/types"
)

func TestMapRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	m := ads.NewMap(store, uniqueName("map"))
	require.NoError(t, m.Save(ctx))
	t.Cleanup(func() {
		ctx := context.Background()
		_ = m.Clear(ctx)
		_ = m.Destroy(ctx)
	})

	key := composite.NewString(store, "alice", uniqueName("key"))
	require.NoError(t, key.Save(ctx))
	t.Cleanup(func() { _ = key.Delete(context.Background()) })

	value := savedInteger(t, store, 10)
	require.NoError(t, m.Set(ctx, key, value))

	// Lookup goes by value: a throwaway key with equal content resolves.
	probe := composite.NewString(store, "alice", "")
	got, err := m.Get(ctx, probe)
	require.NoError(t, err)
	assert.Equal(t, value.ElementName(), got.ElementName())

	ok, err := m.Contains(ctx, probe)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := m.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Reassigning an existing key replaces the value without growing.
	replacement := savedInteger(t, store, 20)
	require.NoError(t, m.Set(ctx, key, replacement))

	got, err = m.Get(ctx, probe)
	require.NoError(t, err)
	assert.Equal(t, replacement.ElementName(), got.ElementName())

	n, err = m.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMapDeleteAndViews(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	m := ads.NewMap(store, uniqueName("map"))
	require.NoError(t, m.Save(ctx))
	t.Cleanup(func() {
		ctx := context.Background()
		_ = m.Clear(ctx)
		_ = m.Destroy(ctx)
	})

	key := composite.NewString(store, "bob", uniqueName("key"))
	require.NoError(t, key.Save(ctx))
	t.Cleanup(func() { _ = key.Delete(context.Background()) })
	value := savedInteger(t, store, 7)
	require.NoError(t, m.Set(ctx, key, value))

	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	n, err := keys.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	values, err := m.Values(ctx)
	require.NoError(t, err)
	n, err = values.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, m.Delete(ctx, key))

	_, err = m.Get(ctx, key)
	assert.ErrorIs(t, err, types.ErrObjectNotFound)

	n, err = m.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// The wrapped elements survive the unbinding.
	require.NoError(t, value.Load(ctx))
}
