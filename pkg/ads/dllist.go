package ads

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/gads/pkg/cypher"
	"github.com/mesh-intelligence/gads/pkg/types"
)

// DLList is an AbstractDLList: an anchor node holding the length, head and
// tail relations to DLListItem wrappers chained with DLL_NXT / DLL_PRV.
// Index access walks the chain, so its cost grows with the index; that is
// the nature of pointer-chased storage, and no secondary index hides it.
type DLList struct {
	structure
}

var _ types.Hashable = (*DLList)(nil)

// NewDLList creates an unsaved list handle.
func NewDLList(store types.Store, name string) *DLList {
	return &DLList{structure{store: store, name: types.ResolveName(name), kind: types.KindAbstractDLList}}
}

// BoundDLList binds a handle to an already persisted list.
func BoundDLList(store types.Store, name string) *DLList {
	l := NewDLList(store, name)
	l.saved = true
	return l
}

// Save persists the anchor node with length zero.
func (l *DLList) Save(ctx context.Context) error {
	return l.save(ctx, map[string]any{"length": int64(0)})
}

const listAppendQuery = `MATCH (l:PersistentElement:AbstractDLList {name: $name})
MATCH (e:PersistentElement {name: $element})
CREATE (i:PersistentElement:DLListItem:AbstractStructItem {name: $itemName, kind: $itemKind})
CREATE (i)-[:ITEM_VALUE]->(e)
WITH l, i
OPTIONAL MATCH (l)-[tailRel:DLL_TAIL]->(t:DLListItem)
FOREACH (old IN CASE WHEN t IS NOT NULL THEN [t] ELSE [] END |
	CREATE (old)-[:DLL_NXT]->(i)
	CREATE (i)-[:DLL_PRV]->(old))
FOREACH (_ IN CASE WHEN t IS NULL THEN [1] ELSE [] END |
	CREATE (l)-[:DLL_HEAD]->(i))
DELETE tailRel
CREATE (l)-[:DLL_TAIL]->(i)
SET l.length = coalesce(l.length, 0) + 1
RETURN l.length AS length`

// Append links a new wrapper item after the current tail, or installs it
// as both endpoints when the list is empty, and bumps the length — one
// query for all cases.
func (l *DLList) Append(ctx context.Context, el types.Element) error {
	if err := l.requireSaved("append to"); err != nil {
		return err
	}
	if err := l.requireOperand("append to", el); err != nil {
		return err
	}
	rows, err := l.store.Execute(ctx, listAppendQuery, map[string]any{
		"name":     l.name,
		"element":  el.ElementName(),
		"itemName": types.AnonymousName(),
		"itemKind": types.KindDLListItem,
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return l.notFound("append to")
	}
	return nil
}

const listLenQuery = `MATCH (l:PersistentElement:AbstractDLList {name: $name})
RETURN coalesce(l.length, 0) AS length`

// Len reads the maintained length off the anchor.
func (l *DLList) Len(ctx context.Context) (int64, error) {
	if err := l.requireSaved("measure"); err != nil {
		return 0, err
	}
	rows, err := l.store.Execute(ctx, listLenQuery, map[string]any{"name": l.name})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, l.notFound("measure")
	}
	return intValue(rows[0]["length"]), nil
}

// locateItem renders the pattern resolving the item at index i: i DLL_NXT
// hops from the head for i >= 0, or -i-1 DLL_PRV hops from the tail for
// negative indices. Hop counts are literal text; path lengths cannot be
// bound as parameters.
func locateItem(i int) string {
	if i >= 0 {
		return "(l)-[:" + types.RelHead + "]->(:DLListItem)" + cypher.Hops(types.RelNext, i) + "(x:DLListItem)"
	}
	return "(l)-[:" + types.RelTail + "]->(:DLListItem)" + cypher.Hops(types.RelPrev, -i-1) + "(x:DLListItem)"
}

// Get resolves the element wrapped at index i, zero-based, with negative
// indices counting from the end. Cost is proportional to the traversal
// depth.
func (l *DLList) Get(ctx context.Context, i int) (types.Element, error) {
	if err := l.requireSaved("index"); err != nil {
		return nil, err
	}
	query := `MATCH (l:PersistentElement:AbstractDLList {name: $name})
OPTIONAL MATCH ` + locateItem(i) + `
OPTIONAL MATCH (x)-[:ITEM_VALUE]->(e)
RETURN e.name AS name, e.kind AS kind`
	rows, err := l.store.Execute(ctx, query, map[string]any{"name": l.name})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, l.notFound("index")
	}
	if rows[0]["name"] == nil {
		return nil, fmt.Errorf("index %d in %s %q: %w", i, l.kind, l.name, types.ErrIndexOutOfRange)
	}
	return types.NewRef(stringValue(rows[0]["name"]), stringValue(rows[0]["kind"])), nil
}

// Remove splices out the item at index i: its neighbours are relinked, the
// endpoint anchors move if it was an endpoint, and the length drops — one
// query. The wrapped element survives.
func (l *DLList) Remove(ctx context.Context, i int) error {
	if err := l.requireSaved("remove from"); err != nil {
		return err
	}
	query := `MATCH (l:PersistentElement:AbstractDLList {name: $name})
MATCH ` + locateItem(i) + `
OPTIONAL MATCH (p:DLListItem)-[:DLL_NXT]->(x)
OPTIONAL MATCH (x)-[:DLL_NXT]->(n:DLListItem)
FOREACH (_ IN CASE WHEN p IS NOT NULL AND n IS NOT NULL THEN [1] ELSE [] END |
	CREATE (p)-[:DLL_NXT]->(n)
	CREATE (n)-[:DLL_PRV]->(p))
FOREACH (_ IN CASE WHEN p IS NULL AND n IS NOT NULL THEN [1] ELSE [] END |
	CREATE (l)-[:DLL_HEAD]->(n))
FOREACH (_ IN CASE WHEN n IS NULL AND p IS NOT NULL THEN [1] ELSE [] END |
	CREATE (l)-[:DLL_TAIL]->(p))
DETACH DELETE x
SET l.length = l.length - 1
RETURN l.length AS length`
	rows, err := l.store.Execute(ctx, query, map[string]any{"name": l.name})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("remove %d from %s %q: %w", i, l.kind, l.name, types.ErrIndexOutOfRange)
	}
	return nil
}

const listMergeQuery = `MATCH (u:PersistentElement:AbstractDLList {name: $name})
MATCH (v:PersistentElement:AbstractDLList {name: $other})
OPTIONAL MATCH (u)-[ut:DLL_TAIL]->(utail:DLListItem)
OPTIONAL MATCH (v)-[:DLL_HEAD]->(vhead:DLListItem)
OPTIONAL MATCH (v)-[:DLL_TAIL]->(vtail:DLListItem)
WITH u, v, ut, utail, vhead, vtail, coalesce(v.length, 0) AS grafted
FOREACH (_ IN CASE WHEN utail IS NOT NULL AND vhead IS NOT NULL THEN [1] ELSE [] END |
	CREATE (utail)-[:DLL_NXT]->(vhead)
	CREATE (vhead)-[:DLL_PRV]->(utail))
FOREACH (_ IN CASE WHEN utail IS NULL AND vhead IS NOT NULL THEN [1] ELSE [] END |
	CREATE (u)-[:DLL_HEAD]->(vhead))
FOREACH (_ IN CASE WHEN vtail IS NOT NULL THEN [1] ELSE [] END |
	CREATE (u)-[:DLL_TAIL]->(vtail))
FOREACH (rel IN CASE WHEN vtail IS NOT NULL AND ut IS NOT NULL THEN [ut] ELSE [] END |
	DELETE rel)
SET u.length = coalesce(u.length, 0) + grafted
DETACH DELETE v
RETURN u.length AS length`

// ExtendByMerging grafts other's whole chain after this list's tail by
// relinking: a constant number of relations change, no element is copied
// or visited. Other's anchor node is deleted in the same query, so its
// name stops resolving; the items keep their identities.
func (l *DLList) ExtendByMerging(ctx context.Context, other *DLList) error {
	if err := l.requireSaved("merge into"); err != nil {
		return err
	}
	if err := l.requireOperand("merge into", other); err != nil {
		return err
	}
	if other.name == l.name {
		return fmt.Errorf("merge %s %q into itself: %w", l.kind, l.name, types.ErrInvalidName)
	}
	rows, err := l.store.Execute(ctx, listMergeQuery, map[string]any{"name": l.name, "other": other.name})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("merge %q into %q: %w", other.name, l.name, types.ErrObjectNotFound)
	}
	other.saved = false
	return nil
}

// listFromQueryTail is appended after the caller's fragment. The fragment
// runs first and its matches aggregate into one row, so an empty result
// still reaches the list anchor. The populating subquery is skipped
// entirely when the list already has members; the returned counters let
// the engine distinguish that case.
const listFromQueryTail = `
WITH collect(` + cypher.ReservedBinding + `) AS vals
MATCH (l:PersistentElement:AbstractDLList {name: $name})
OPTIONAL MATCH (l)-[:DLL_HEAD]->(existing:DLListItem)
WITH l, vals, size(vals) AS total, count(existing) AS members
CALL {
	WITH l, vals, total, members
	WITH l, vals, total WHERE members = 0 AND total > 0
	UNWIND range(0, total - 1) AS pos
	WITH l, total, pos, vals[pos] AS e
	CREATE (n:PersistentElement:DLListItem:AbstractStructItem {name: ` + cypher.AnonNameExpr + `, kind: $itemKind})
	CREATE (n)-[:ITEM_VALUE]->(e)
	WITH l, total, collect({pos: pos, node: n}) AS items
	FOREACH (h IN [x IN items WHERE x.pos = 0 | x.node] |
		CREATE (l)-[:DLL_HEAD]->(h))
	FOREACH (t IN [x IN items WHERE x.pos = total - 1 | x.node] |
		CREATE (l)-[:DLL_TAIL]->(t))
	SET l.length = total
	WITH items
	UNWIND CASE WHEN size(items) < 2 THEN [] ELSE range(0, size(items) - 2) END AS k
	WITH [x IN items WHERE x.pos = k][0].node AS a, [x IN items WHERE x.pos = k + 1][0].node AS b
	CREATE (a)-[:DLL_NXT]->(b)
	CREATE (b)-[:DLL_PRV]->(a)
}
RETURN total AS length, members`

// FromQuery populates an empty list from a caller-supplied read-only
// fragment. The fragment must bind its matches to the reserved name (see
// cypher.ReservedBinding) in the order the list should hold them; the
// compiler wraps it so the wrapper items, the chain and the anchors are
// all created in the same execution. A missing binding fails with
// ErrBindingNotFound before anything runs; a non-empty list fails with
// ErrContainerNotEmpty, with nothing modified.
func (l *DLList) FromQuery(ctx context.Context, fragment string) (int64, error) {
	if err := l.requireSaved("populate"); err != nil {
		return 0, err
	}
	if err := cypher.ValidateFragment(fragment); err != nil {
		return 0, fmt.Errorf("populate %s %q: %w", l.kind, l.name, err)
	}
	rows, err := l.store.Execute(ctx, fragment+listFromQueryTail, map[string]any{
		"name":     l.name,
		"itemKind": types.KindDLListItem,
	})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, l.notFound("populate")
	}
	if n := intValue(rows[0]["members"]); n > 0 {
		return 0, fmt.Errorf("populate %s %q: %d members present: %w", l.kind, l.name, n, types.ErrContainerNotEmpty)
	}
	return intValue(rows[0]["length"]), nil
}

const listClearQuery = `MATCH (l:PersistentElement:AbstractDLList {name: $name})
OPTIONAL MATCH (l)-[:DLL_HEAD]->(h:DLListItem)
OPTIONAL MATCH (h)-[:DLL_NXT*0..]->(i:DLListItem)
DETACH DELETE i
WITH l, count(i) AS removed
SET l.length = 0
RETURN removed`

// Clear deletes every wrapper item and unlinks the anchors, keeping the
// anchor node at length zero. Clearing an empty list succeeds.
func (l *DLList) Clear(ctx context.Context) error {
	if err := l.requireSaved("clear"); err != nil {
		return err
	}
	rows, err := l.store.Execute(ctx, listClearQuery, map[string]any{"name": l.name})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return l.notFound("clear")
	}
	return nil
}

const listDestroyQuery = `MATCH (l:PersistentElement:AbstractDLList {name: $name})
WITH l, coalesce(l.length, 0) AS members
FOREACH (_ IN CASE WHEN members = 0 THEN [1] ELSE [] END | DETACH DELETE l)
RETURN members`

// Destroy deletes the anchor node, guarded inside the query: a list
// observed non-empty at execution is left untouched and the call returns
// ErrDestroyNonEmpty.
func (l *DLList) Destroy(ctx context.Context) error {
	if err := l.requireSaved("destroy"); err != nil {
		return err
	}
	return l.destroyGuarded(ctx, listDestroyQuery, map[string]any{"name": l.name})
}
