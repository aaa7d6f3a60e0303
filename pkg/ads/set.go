package ads

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// Set is an AbstractSet: an anchor node whose members are SetItem wrapper
// nodes, one per distinct value hash, each pointing at the wrapped element.
// Membership is by value, not identity: two elements with equal content
// occupy one slot.
type Set struct {
	structure
}

var _ types.Hashable = (*Set)(nil)

// NewSet creates an unsaved set handle. An empty name yields an anonymous
// set, which the garbage collector reclaims once nothing named reaches it.
func NewSet(store types.Store, name string) *Set {
	return &Set{structure{store: store, name: types.ResolveName(name), kind: types.KindAbstractSet}}
}

// BoundSet binds a handle to an already persisted set.
func BoundSet(store types.Store, name string) *Set {
	s := NewSet(store, name)
	s.saved = true
	return s
}

// Save persists the anchor node.
func (s *Set) Save(ctx context.Context) error {
	return s.save(ctx, nil)
}

const setAddQuery = `MATCH (s:PersistentElement:AbstractSet {name: $name})
MATCH (e:PersistentElement {name: $element})
MERGE (s)-[:SET_ELEMENT]->(i:PersistentElement:SetItem:AbstractStructItem {hash_value: $hash})
ON CREATE SET i.name = $itemName, i.kind = $itemKind
MERGE (i)-[:ITEM_VALUE]->(e)
RETURN i.hash_value AS hash`

// Add wraps el into the set unless a member with equal value already
// exists; a duplicate add is a no-op. It returns the set for chaining.
func (s *Set) Add(ctx context.Context, el types.Hashable) (*Set, error) {
	if err := s.requireSaved("add to"); err != nil {
		return nil, err
	}
	if err := s.requireOperand("add to", el); err != nil {
		return nil, err
	}
	hash, err := el.HashValue()
	if err != nil {
		return nil, fmt.Errorf("add to %s %q: %w", s.kind, s.name, err)
	}
	rows, err := s.store.Execute(ctx, setAddQuery, map[string]any{
		"name":     s.name,
		"element":  el.ElementName(),
		"hash":     hash,
		"itemName": types.AnonymousName(),
		"itemKind": types.KindSetItem,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, s.notFound("add to")
	}
	return s, nil
}

const setContainsQuery = `MATCH (s:PersistentElement:AbstractSet {name: $name})
OPTIONAL MATCH (s)-[:SET_ELEMENT]->(i:SetItem {hash_value: $hash})
RETURN count(i) > 0 AS present`

// Contains tests membership by value with one existence query; the set's
// contents are never materialized client-side. The supplied handle only
// needs to be hashable, not saved.
func (s *Set) Contains(ctx context.Context, el types.Hashable) (bool, error) {
	if err := s.requireSaved("test"); err != nil {
		return false, err
	}
	hash, err := el.HashValue()
	if err != nil {
		return false, fmt.Errorf("test %s %q: %w", s.kind, s.name, err)
	}
	rows, err := s.store.Execute(ctx, setContainsQuery, map[string]any{"name": s.name, "hash": hash})
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, s.notFound("test")
	}
	return boolValue(rows[0]["present"]), nil
}

const setLenQuery = `MATCH (s:PersistentElement:AbstractSet {name: $name})
OPTIONAL MATCH (s)-[:SET_ELEMENT]->(i:SetItem)
RETURN count(i) AS length`

// Len counts members with one query.
func (s *Set) Len(ctx context.Context) (int64, error) {
	if err := s.requireSaved("measure"); err != nil {
		return 0, err
	}
	rows, err := s.store.Execute(ctx, setLenQuery, map[string]any{"name": s.name})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, s.notFound("measure")
	}
	return intValue(rows[0]["length"]), nil
}

// copyMembers renders a subquery block that copies every member of src
// satisfying filter into dst. Fresh wrapper items get server-generated
// anonymous names so they stay collectable.
func copyMembers(src, dst, filter string) string {
	block := "CALL {\n\tWITH a, b, r\n\tMATCH (" + src + `)-[:SET_ELEMENT]->(i:SetItem)-[:ITEM_VALUE]->(e)` + "\n"
	if filter != "" {
		block += "\t" + filter + "\n"
	}
	block += "\tMERGE (" + dst + `)-[:SET_ELEMENT]->(n:PersistentElement:SetItem:AbstractStructItem {hash_value: i.hash_value})` + "\n" +
		"\tON CREATE SET n.name = replace(randomUUID(), '-', ''), n.kind = $itemKind\n" +
		"\tMERGE (n)-[:ITEM_VALUE]->(e)\n}"
	return block
}

const inOther = `MATCH (b)-[:SET_ELEMENT]->(:SetItem {hash_value: i.hash_value})`
const notInOther = `WHERE NOT EXISTS { MATCH (b)-[:SET_ELEMENT]->(:SetItem {hash_value: i.hash_value}) }`
const notInFirst = `WHERE NOT EXISTS { MATCH (a)-[:SET_ELEMENT]->(:SetItem {hash_value: i.hash_value}) }`

// algebra compiles and runs one query that creates the result set and
// populates it from the operands entirely server-side. The operands are
// left unmodified; the result is a fresh anonymous set.
func (s *Set) algebra(ctx context.Context, op string, other *Set, blocks ...string) (*Set, error) {
	if err := s.requireSaved(op); err != nil {
		return nil, err
	}
	if err := s.requireOperand(op, other); err != nil {
		return nil, err
	}
	query := `MATCH (a:PersistentElement:AbstractSet {name: $left})
MATCH (b:PersistentElement:AbstractSet {name: $right})
CREATE (r:PersistentElement:AbstractSet {name: $result, kind: $kind})
WITH a, b, r
`
	for _, block := range blocks {
		query += block + "\n"
	}
	query += "RETURN r.name AS name"

	result := types.AnonymousName()
	rows, err := s.store.Execute(ctx, query, map[string]any{
		"left":     s.name,
		"right":    other.name,
		"result":   result,
		"kind":     types.KindAbstractSet,
		"itemKind": types.KindSetItem,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %q and %q: %w", op, s.name, other.name, types.ErrObjectNotFound)
	}
	return BoundSet(s.store, result), nil
}

// Union returns a new set holding every value present in either operand.
func (s *Set) Union(ctx context.Context, other *Set) (*Set, error) {
	return s.algebra(ctx, "union", other,
		copyMembers("a", "r", ""),
		copyMembers("b", "r", ""))
}

// Intersection returns a new set holding the values present in both
// operands.
func (s *Set) Intersection(ctx context.Context, other *Set) (*Set, error) {
	return s.algebra(ctx, "intersect", other,
		copyMembers("a", "r", inOther))
}

// Difference returns a new set holding the values of this set absent from
// other.
func (s *Set) Difference(ctx context.Context, other *Set) (*Set, error) {
	return s.algebra(ctx, "subtract", other,
		copyMembers("a", "r", notInOther))
}

// SymmetricDifference returns a new set holding the values present in
// exactly one operand.
func (s *Set) SymmetricDifference(ctx context.Context, other *Set) (*Set, error) {
	return s.algebra(ctx, "symmetric-subtract", other,
		copyMembers("a", "r", notInOther),
		copyMembers("b", "r", notInFirst))
}

const setEqualQuery = `MATCH (a:PersistentElement:AbstractSet {name: $left})
MATCH (b:PersistentElement:AbstractSet {name: $right})
OPTIONAL MATCH (a)-[:SET_ELEMENT]->(i:SetItem)
WITH a, b, collect(DISTINCT i.hash_value) AS left
OPTIONAL MATCH (b)-[:SET_ELEMENT]->(j:SetItem)
WITH left, collect(DISTINCT j.hash_value) AS right
RETURN size(left) = size(right) AND all(h IN left WHERE h IN right) AS equal`

// Equal reports whether both sets hold exactly the same values, compared
// by hash in one query.
func (s *Set) Equal(ctx context.Context, other *Set) (bool, error) {
	if err := s.requireSaved("compare"); err != nil {
		return false, err
	}
	if err := s.requireOperand("compare", other); err != nil {
		return false, err
	}
	rows, err := s.store.Execute(ctx, setEqualQuery, map[string]any{"left": s.name, "right": other.name})
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, fmt.Errorf("compare %q and %q: %w", s.name, other.name, types.ErrObjectNotFound)
	}
	return boolValue(rows[0]["equal"]), nil
}

const setFromSetQuery = `MATCH (s:PersistentElement:AbstractSet {name: $name})
MATCH (o:PersistentElement:AbstractSet {name: $other})
OPTIONAL MATCH (s)-[:SET_ELEMENT]->(x:SetItem)
WITH s, o, count(x) AS members
CALL {
	WITH s, o, members
	WITH s, o WHERE members = 0
	MATCH (o)-[:SET_ELEMENT]->(i:SetItem)-[:ITEM_VALUE]->(e)
	MERGE (s)-[:SET_ELEMENT]->(n:PersistentElement:SetItem:AbstractStructItem {hash_value: i.hash_value})
	ON CREATE SET n.name = replace(randomUUID(), '-', ''), n.kind = $itemKind
	MERGE (n)-[:ITEM_VALUE]->(e)
}
RETURN members`

// FromSet copies other's members into this set server-side. The receiver
// must be empty; ErrContainerNotEmpty otherwise, with nothing modified.
func (s *Set) FromSet(ctx context.Context, other *Set) error {
	if err := s.requireSaved("populate"); err != nil {
		return err
	}
	if err := s.requireOperand("populate", other); err != nil {
		return err
	}
	rows, err := s.store.Execute(ctx, setFromSetQuery, map[string]any{
		"name":     s.name,
		"other":    other.name,
		"itemKind": types.KindSetItem,
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("populate %q from %q: %w", s.name, other.name, types.ErrObjectNotFound)
	}
	if n := intValue(rows[0]["members"]); n > 0 {
		return fmt.Errorf("populate %s %q: %d members present: %w", s.kind, s.name, n, types.ErrContainerNotEmpty)
	}
	return nil
}

const setClearQuery = `MATCH (s:PersistentElement:AbstractSet {name: $name})
OPTIONAL MATCH (s)-[:SET_ELEMENT]->(i:SetItem)
DETACH DELETE i
WITH s, count(i) AS removed
RETURN removed`

// Clear removes every member, keeping the anchor. Clearing an empty set
// succeeds.
func (s *Set) Clear(ctx context.Context) error {
	if err := s.requireSaved("clear"); err != nil {
		return err
	}
	rows, err := s.store.Execute(ctx, setClearQuery, map[string]any{"name": s.name})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return s.notFound("clear")
	}
	return nil
}

const setDestroyQuery = `MATCH (s:PersistentElement:AbstractSet {name: $name})
OPTIONAL MATCH (s)-[:SET_ELEMENT]->(i:SetItem)
WITH s, count(i) AS members
FOREACH (_ IN CASE WHEN members = 0 THEN [1] ELSE [] END | DETACH DELETE s)
RETURN members`

// Destroy deletes the anchor node. The deletion is guarded inside the
// query: a set observed non-empty at execution is left untouched and the
// call returns ErrDestroyNonEmpty.
func (s *Set) Destroy(ctx context.Context) error {
	if err := s.requireSaved("destroy"); err != nil {
		return err
	}
	return s.destroyGuarded(ctx, setDestroyQuery, map[string]any{"name": s.name})
}
