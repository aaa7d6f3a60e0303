package types

import (
	"context"
	"errors"
)

// Row is a single result record keyed by the query's return aliases.
type Row map[string]any

// Store is the capability the engine requires from a graph storage backend:
// execute one parameterized query atomically and return its rows. The store
// must enforce a uniqueness constraint on the `name` property of nodes
// labelled PersistentElement and support directed-relation pattern matching.
//
// Each call is an independent round trip; implementations must not require
// the caller to hold a session across calls. Cancellation and timeouts are
// delegated to ctx.
type Store interface {
	Execute(ctx context.Context, query string, params map[string]any) ([]Row, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
