// Package integration exercises the engines against a live Neo4j store.
// The suite skips itself unless GADS_NEO4J_URI is set.
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/gads/internal/neo4j"
	"github.com/mesh-intelligence/gads/pkg/ads"
	"github.com/mesh-intelligence/gads/pkg/simple"
	"github.com/mesh-intelligence/gads/pkg/types"
)

// setupStore attaches a store to the database named by the environment and
// detaches it when the test finishes.
func setupStore(t *testing.T) types.Store {
	t.Helper()

	uri := os.Getenv("GADS_NEO4J_URI")
	if uri == "" {
		t.Skip("GADS_NEO4J_URI not set; skipping integration test")
	}

	config := types.Config{
		URI:      uri,
		Username: envOr("GADS_NEO4J_USERNAME", "neo4j"),
		Password: os.Getenv("GADS_NEO4J_PASSWORD"),
		Database: os.Getenv("GADS_NEO4J_DATABASE"),
	}

	store := neo4j.NewStore(zaptest.NewLogger(t))
	ctx := context.Background()
	require.NoError(t, store.Attach(ctx, config))
	t.Cleanup(func() {
		require.NoError(t, store.Detach(context.Background()))
	})
	return store
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// uniqueName keeps concurrent suite runs against a shared database from
// colliding. The prefix marks the element as test-owned and keeps it out
// of the anonymous-name pattern.
func uniqueName(label string) string {
	return fmt.Sprintf("it-%s-%s", label, types.AnonymousName()[:12])
}

// savedInteger persists a named integer and removes it when the test ends.
func savedInteger(t *testing.T, store types.Store, value int64) *simple.Integer {
	t.Helper()
	ctx := context.Background()
	v := simple.NewInteger(store, value, uniqueName("int"))
	require.NoError(t, v.Save(ctx))
	t.Cleanup(func() { _ = v.Delete(context.Background()) })
	return v
}

// savedSet persists a set holding the given integers and tears it down.
func savedSet(t *testing.T, store types.Store, values ...int64) *ads.Set {
	t.Helper()
	ctx := context.Background()
	s := ads.NewSet(store, uniqueName("set"))
	require.NoError(t, s.Save(ctx))
	t.Cleanup(func() {
		ctx := context.Background()
		_ = s.Clear(ctx)
		_ = s.Destroy(ctx)
	})
	for _, value := range values {
		_, err := s.Add(ctx, savedInteger(t, store, value))
		require.NoError(t, err)
	}
	return s
}

// destroySet clears and destroys a set the test created mid-flight, such
// as an algebra result.
func destroySet(t *testing.T, s *ads.Set) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Destroy(ctx))
}
