package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gads/pkg/ads"
	"github.com/mesh-intelligence/gads/pkg/memory"
	"github.com/mesh-intelligence/gads/pkg/simple"
	"github.com/mesh-intelligence/gads/pkg/types"
)

func TestGarbageCollectUnreachableAnonymous(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	manager := memory.NewManager(store)

	// An anonymous scalar never linked to anything named.
	stray := simple.NewInteger(store, 42, "")
	require.NoError(t, stray.Save(ctx))

	// An anonymous member of a named set survives: the set reaches it.
	kept := simple.NewInteger(store, 43, "")
	require.NoError(t, kept.Save(ctx))
	owner := savedSet(t, store)
	_, err := owner.Add(ctx, kept)
	require.NoError(t, err)

	removed, err := manager.GarbageCollect(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	_, err = manager.GetObject(ctx, stray.ElementName())
	assert.ErrorIs(t, err, types.ErrObjectNotFound)

	_, err = manager.GetObject(ctx, kept.ElementName())
	require.NoError(t, err)

	ok, err := owner.Contains(ctx, kept)
	require.NoError(t, err)
	assert.True(t, ok, "reachable members keep their wrappers")
}

func TestGarbageCollectRecursiveReachability(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	manager := memory.NewManager(store)

	// An anonymous set holding an anonymous scalar, reachable from nothing
	// named: both levels go in one pass.
	inner := simple.NewInteger(store, 1, "")
	require.NoError(t, inner.Save(ctx))
	orphan := ads.NewSet(store, "")
	require.NoError(t, orphan.Save(ctx))
	_, err := orphan.Add(ctx, inner)
	require.NoError(t, err)

	// The same nesting under a named root survives whole.
	deep := simple.NewInteger(store, 2, "")
	require.NoError(t, deep.Save(ctx))
	middle := ads.NewSet(store, "")
	require.NoError(t, middle.Save(ctx))
	_, err = middle.Add(ctx, deep)
	require.NoError(t, err)
	root := savedSet(t, store)
	_, err = root.Add(ctx, middle)
	require.NoError(t, err)

	removed, err := manager.GarbageCollect(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(2), "the orphan root and its nested member both go")

	_, err = manager.GetObject(ctx, orphan.ElementName())
	assert.ErrorIs(t, err, types.ErrObjectNotFound)
	_, err = manager.GetObject(ctx, inner.ElementName())
	assert.ErrorIs(t, err, types.ErrObjectNotFound)

	_, err = manager.GetObject(ctx, middle.ElementName())
	require.NoError(t, err, "anonymous but reachable from a named root")
	_, err = manager.GetObject(ctx, deep.ElementName())
	require.NoError(t, err)
}
