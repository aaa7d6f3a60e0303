package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/mesh-intelligence/gads/pkg/ads"
	"github.com/mesh-intelligence/gads/pkg/composite"
	"github.com/mesh-intelligence/gads/pkg/simple"
	"github.com/mesh-intelligence/gads/pkg/types"
)

// Manager enumerates, resolves and reclaims persisted elements.
type Manager struct {
	store types.Store
}

// NewManager binds a manager to a store.
func NewManager(store types.Store) *Manager {
	return &Manager{store: store}
}

const listObjectsQuery = `MATCH (n:PersistentElement)
WHERE NOT n:AbstractStructItem
RETURN n.name AS name, n.kind AS kind`

// ListObjects enumerates every element in the store, wrapper items
// excluded, as typed handles keyed by name.
func (m *Manager) ListObjects(ctx context.Context) (map[string]types.Element, error) {
	rows, err := m.store.Execute(ctx, listObjectsQuery, nil)
	if err != nil {
		return nil, err
	}
	objects := make(map[string]types.Element, len(rows))
	for _, row := range rows {
		name, _ := row["name"].(string)
		kind, _ := row["kind"].(string)
		if name == "" {
			continue
		}
		objects[name] = m.handleFor(name, kind)
	}
	return objects, nil
}

const getObjectQuery = `MATCH (n:PersistentElement {name: $name})
RETURN n.kind AS kind`

// GetObject resolves one name to a typed handle, ErrObjectNotFound when
// nothing carries it.
func (m *Manager) GetObject(ctx context.Context, name string) (types.Element, error) {
	rows, err := m.store.Execute(ctx, getObjectQuery, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("resolve %q: %w", name, types.ErrObjectNotFound)
	}
	kind, _ := rows[0]["kind"].(string)
	return m.handleFor(name, kind), nil
}

// handleFor dispatches on the kind discriminator. The scalar and composite
// handles come back empty; Load fetches their content when needed. Unknown
// kinds, including domain-owned elements, resolve to a plain Ref.
func (m *Manager) handleFor(name, kind string) types.Element {
	switch kind {
	case types.KindSimpleInteger:
		return simple.BoundInteger(m.store, name, 0)
	case types.KindSimpleNumber:
		return simple.BoundNumber(m.store, name, 0)
	case types.KindSimpleDate:
		return simple.BoundDate(m.store, name, time.Time{})
	case types.KindCompositeString:
		return composite.BoundString(m.store, name, "")
	case types.KindCompositeArrayString:
		return composite.BoundArrayString(m.store, name, nil)
	case types.KindCompositeArrayNumber:
		return composite.BoundArrayNumber(m.store, name, nil)
	case types.KindCompositeArrayDate:
		return composite.BoundArrayDate(m.store, name, nil)
	case types.KindAbstractSet:
		return ads.BoundSet(m.store, name)
	case types.KindAbstractMap:
		return ads.BoundMap(m.store, name)
	case types.KindAbstractDLList:
		return ads.BoundDLList(m.store, name)
	}
	return types.NewRef(name, kind)
}

const garbageCollectQuery = `MATCH (g:PersistentElement)
WHERE (g.name =~ $anonPattern OR g:AbstractStructItem)
AND NOT EXISTS {
	MATCH (root:PersistentElement)
	WHERE NOT root.name =~ $anonPattern AND NOT root:AbstractStructItem
	MATCH (root)-[*]->(g)
}
DETACH DELETE g
RETURN count(g) AS removed`

// GarbageCollect reclaims every anonymous element and wrapper item that no
// named element reaches over any directed relation path, at any depth, in
// one mark-and-sweep query. It returns the number of deleted nodes.
//
// An anonymous structure reachable only through another unreachable
// anonymous root is swept in the same pass: neither has a named path to
// it, so both match.
func (m *Manager) GarbageCollect(ctx context.Context) (int64, error) {
	rows, err := m.store.Execute(ctx, garbageCollectQuery, map[string]any{
		"anonPattern": types.AnonymousNamePattern,
	})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	removed, _ := rows[0]["removed"].(int64)
	return removed, nil
}

// Stats summarizes the store population by kind.
type Stats struct {
	// Named counts elements per kind whose name was chosen by the caller.
	Named map[string]int64
	// Anonymous counts elements per kind with generated names, wrapper
	// items included. These are the garbage collector's candidates.
	Anonymous map[string]int64
}

// Total returns the number of elements across both classes.
func (s Stats) Total() int64 {
	var total int64
	for _, n := range s.Named {
		total += n
	}
	for _, n := range s.Anonymous {
		total += n
	}
	return total
}

const statsQuery = `MATCH (n:PersistentElement)
RETURN coalesce(n.kind, '') AS kind, n.name =~ $anonPattern AS anonymous, count(n) AS count`

// Stats counts elements by kind, split into named and anonymous.
func (m *Manager) Stats(ctx context.Context) (Stats, error) {
	rows, err := m.store.Execute(ctx, statsQuery, map[string]any{
		"anonPattern": types.AnonymousNamePattern,
	})
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Named: map[string]int64{}, Anonymous: map[string]int64{}}
	for _, row := range rows {
		kind, _ := row["kind"].(string)
		count, _ := row["count"].(int64)
		if anonymous, _ := row["anonymous"].(bool); anonymous {
			stats.Anonymous[kind] += count
		} else {
			stats.Named[kind] += count
		}
	}
	return stats, nil
}
