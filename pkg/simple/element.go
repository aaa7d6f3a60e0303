package simple

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/gads/pkg/cypher"
	"github.com/mesh-intelligence/gads/pkg/types"
)

// element carries the identity state shared by every scalar kind and the
// compiled-query plumbing for the persistence lifecycle. Each lifecycle
// transition is exactly one store round trip.
type element struct {
	store types.Store
	name  string
	kind  string
	saved bool
}

func (e *element) ElementName() string { return e.name }
func (e *element) ElementKind() string { return e.kind }
func (e *element) Saved() bool         { return e.saved }

// save persists the element: a CREATE on first save, a MATCH/SET upsert on
// every save after that. A lost race on a first save surfaces as
// types.ErrNameCollision from the store layer.
func (e *element) save(ctx context.Context, props map[string]any) error {
	if e.saved {
		query, params := cypher.UpdateElement(e.kind, e.name, props)
		_, err := e.store.Execute(ctx, query, params)
		return err
	}
	query, params := cypher.CreateElement(e.kind, e.name, props)
	if _, err := e.store.Execute(ctx, query, params); err != nil {
		return err
	}
	e.saved = true
	return nil
}

// delete removes the node and all its relations. The handle reverts to the
// unsaved state and can be re-persisted under the same name.
func (e *element) delete(ctx context.Context) error {
	if !e.saved {
		return fmt.Errorf("delete %s %q: %w", e.kind, e.name, types.ErrUnsavedElement)
	}
	query, params := cypher.DeleteElement(e.kind, e.name)
	rows, err := e.store.Execute(ctx, query, params)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("delete %s %q: %w", e.kind, e.name, types.ErrObjectNotFound)
	}
	e.saved = false
	return nil
}

// fetchValue reads the node's value property.
func (e *element) fetchValue(ctx context.Context) (any, error) {
	if !e.saved {
		return nil, fmt.Errorf("load %s %q: %w", e.kind, e.name, types.ErrUnsavedElement)
	}
	query, params := cypher.FetchValue(e.kind, e.name)
	rows, err := e.store.Execute(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load %s %q: %w", e.kind, e.name, types.ErrObjectNotFound)
	}
	return rows[0]["value"], nil
}
