package ads

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// Map is an AbstractMap: two anonymous AbstractSets (keys and values) hung
// off the anchor, with a MAP_LINK relation pairing each key item with its
// current value item. The value item carries the key's hash, so every map
// operation resolves through one pattern.
type Map struct {
	structure
}

var _ types.Hashable = (*Map)(nil)

// NewMap creates an unsaved map handle.
func NewMap(store types.Store, name string) *Map {
	return &Map{structure{store: store, name: types.ResolveName(name), kind: types.KindAbstractMap}}
}

// BoundMap binds a handle to an already persisted map.
func BoundMap(store types.Store, name string) *Map {
	m := NewMap(store, name)
	m.saved = true
	return m
}

const mapSaveQuery = `CREATE (m:PersistentElement:AbstractMap) SET m.name = $name, m.kind = $kind
CREATE (k:PersistentElement:AbstractSet {name: $keysName, kind: $setKind})
CREATE (v:PersistentElement:AbstractSet {name: $valuesName, kind: $setKind})
CREATE (m)-[:KEYS_SET]->(k)
CREATE (m)-[:VALUES_SET]->(v)`

// Save persists the anchor together with its two anonymous member sets,
// in one statement.
func (m *Map) Save(ctx context.Context) error {
	if m.saved {
		return nil
	}
	_, err := m.store.Execute(ctx, mapSaveQuery, map[string]any{
		"name":       m.name,
		"kind":       m.kind,
		"keysName":   types.AnonymousName(),
		"valuesName": types.AnonymousName(),
		"setKind":    types.KindAbstractSet,
	})
	if err != nil {
		return err
	}
	m.saved = true
	return nil
}

const mapSetQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})-[:KEYS_SET]->(ks:AbstractSet)
MATCH (m)-[:VALUES_SET]->(vs:AbstractSet)
MATCH (ke:PersistentElement {name: $key})
MATCH (ve:PersistentElement {name: $value})
MERGE (ks)-[:SET_ELEMENT]->(ki:PersistentElement:SetItem:AbstractStructItem {hash_value: $hash})
ON CREATE SET ki.name = $keyItemName, ki.kind = $itemKind
MERGE (ki)-[:ITEM_VALUE]->(ke)
MERGE (vs)-[:SET_ELEMENT]->(vi:PersistentElement:SetItem:AbstractStructItem {hash_value: $hash})
ON CREATE SET vi.name = $valueItemName, vi.kind = $itemKind
MERGE (ki)-[:MAP_LINK]->(vi)
WITH vi, ve
OPTIONAL MATCH (vi)-[stale:ITEM_VALUE]->()
DELETE stale
MERGE (vi)-[:ITEM_VALUE]->(ve)
RETURN vi.hash_value AS hash`

// Set binds value to key, replacing any previous binding for an equal key.
// One query ensures the key item, ensures the paired value item, and
// repoints the value item at the new element.
func (m *Map) Set(ctx context.Context, key types.Hashable, value types.Element) error {
	if err := m.requireSaved("assign in"); err != nil {
		return err
	}
	if err := m.requireOperand("assign in", key); err != nil {
		return err
	}
	if err := m.requireOperand("assign in", value); err != nil {
		return err
	}
	hash, err := key.HashValue()
	if err != nil {
		return fmt.Errorf("assign in %s %q: %w", m.kind, m.name, err)
	}
	rows, err := m.store.Execute(ctx, mapSetQuery, map[string]any{
		"name":          m.name,
		"key":           key.ElementName(),
		"value":         value.ElementName(),
		"hash":          hash,
		"keyItemName":   types.AnonymousName(),
		"valueItemName": types.AnonymousName(),
		"itemKind":      types.KindSetItem,
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return m.notFound("assign in")
	}
	return nil
}

const mapGetQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})-[:KEYS_SET]->(:AbstractSet)-[:SET_ELEMENT]->(ki:SetItem {hash_value: $hash})
MATCH (ki)-[:MAP_LINK]->(:SetItem)-[:ITEM_VALUE]->(e)
RETURN e.name AS name, e.kind AS kind`

// Get resolves the value bound to key. The key handle is matched by value,
// not identity: an unsaved throwaway key with equal content works. A miss
// returns ErrObjectNotFound.
func (m *Map) Get(ctx context.Context, key types.Hashable) (types.Element, error) {
	if err := m.requireSaved("read"); err != nil {
		return nil, err
	}
	hash, err := key.HashValue()
	if err != nil {
		return nil, fmt.Errorf("read %s %q: %w", m.kind, m.name, err)
	}
	rows, err := m.store.Execute(ctx, mapGetQuery, map[string]any{"name": m.name, "hash": hash})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s %q: no binding for key: %w", m.kind, m.name, types.ErrObjectNotFound)
	}
	return types.NewRef(stringValue(rows[0]["name"]), stringValue(rows[0]["kind"])), nil
}

const mapContainsQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})-[:KEYS_SET]->(ks:AbstractSet)
OPTIONAL MATCH (ks)-[:SET_ELEMENT]->(ki:SetItem {hash_value: $hash})
RETURN count(ki) > 0 AS present`

// Contains tests whether a value-equal key is bound.
func (m *Map) Contains(ctx context.Context, key types.Hashable) (bool, error) {
	if err := m.requireSaved("test"); err != nil {
		return false, err
	}
	hash, err := key.HashValue()
	if err != nil {
		return false, fmt.Errorf("test %s %q: %w", m.kind, m.name, err)
	}
	rows, err := m.store.Execute(ctx, mapContainsQuery, map[string]any{"name": m.name, "hash": hash})
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, m.notFound("test")
	}
	return boolValue(rows[0]["present"]), nil
}

const mapLenQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})-[:KEYS_SET]->(ks:AbstractSet)
OPTIONAL MATCH (ks)-[:SET_ELEMENT]->(ki:SetItem)
RETURN count(ki) AS length`

// Len counts bound keys.
func (m *Map) Len(ctx context.Context) (int64, error) {
	if err := m.requireSaved("measure"); err != nil {
		return 0, err
	}
	rows, err := m.store.Execute(ctx, mapLenQuery, map[string]any{"name": m.name})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, m.notFound("measure")
	}
	return intValue(rows[0]["length"]), nil
}

const mapDeleteQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})-[:KEYS_SET]->(:AbstractSet)-[:SET_ELEMENT]->(ki:SetItem {hash_value: $hash})
OPTIONAL MATCH (ki)-[:MAP_LINK]->(vi:SetItem)
DETACH DELETE ki, vi
RETURN 1 AS removed`

// Delete unbinds key: its key item, the paired value item, and the link
// disappear in one query. The wrapped elements themselves survive. A miss
// returns ErrObjectNotFound.
func (m *Map) Delete(ctx context.Context, key types.Hashable) error {
	if err := m.requireSaved("unbind in"); err != nil {
		return err
	}
	hash, err := key.HashValue()
	if err != nil {
		return fmt.Errorf("unbind in %s %q: %w", m.kind, m.name, err)
	}
	rows, err := m.store.Execute(ctx, mapDeleteQuery, map[string]any{"name": m.name, "hash": hash})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("unbind in %s %q: no binding for key: %w", m.kind, m.name, types.ErrObjectNotFound)
	}
	return nil
}

const mapMemberSetQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})-[:%s]->(s:AbstractSet)
RETURN s.name AS name`

// Keys returns a lazily bound view over the underlying key set.
func (m *Map) Keys(ctx context.Context) (*Set, error) {
	return m.memberSet(ctx, types.RelKeysSet)
}

// Values returns a lazily bound view over the underlying value set.
func (m *Map) Values(ctx context.Context) (*Set, error) {
	return m.memberSet(ctx, types.RelValuesSet)
}

func (m *Map) memberSet(ctx context.Context, rel string) (*Set, error) {
	if err := m.requireSaved("view"); err != nil {
		return nil, err
	}
	rows, err := m.store.Execute(ctx, fmt.Sprintf(mapMemberSetQuery, rel), map[string]any{"name": m.name})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, m.notFound("view")
	}
	return BoundSet(m.store, stringValue(rows[0]["name"])), nil
}

const mapClearQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})
OPTIONAL MATCH (m)-[:KEYS_SET|VALUES_SET]->(:AbstractSet)-[:SET_ELEMENT]->(i:SetItem)
DETACH DELETE i
WITH m, count(i) AS removed
RETURN removed`

// Clear unbinds every key, keeping the anchor and its member sets.
// Clearing an empty map succeeds.
func (m *Map) Clear(ctx context.Context) error {
	if err := m.requireSaved("clear"); err != nil {
		return err
	}
	rows, err := m.store.Execute(ctx, mapClearQuery, map[string]any{"name": m.name})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return m.notFound("clear")
	}
	return nil
}

const mapDestroyQuery = `MATCH (m:PersistentElement:AbstractMap {name: $name})
OPTIONAL MATCH (m)-[:KEYS_SET]->(ks:AbstractSet)
OPTIONAL MATCH (m)-[:VALUES_SET]->(vs:AbstractSet)
OPTIONAL MATCH (ks)-[:SET_ELEMENT]->(ki:SetItem)
WITH m, ks, vs, count(ki) AS members
FOREACH (_ IN CASE WHEN members = 0 THEN [1] ELSE [] END | DETACH DELETE m, ks, vs)
RETURN members`

// Destroy deletes the anchor and its two member sets, guarded inside the
// query: a map observed non-empty at execution is left untouched and the
// call returns ErrDestroyNonEmpty.
func (m *Map) Destroy(ctx context.Context) error {
	if err := m.requireSaved("destroy"); err != nil {
		return err
	}
	return m.destroyGuarded(ctx, mapDestroyQuery, map[string]any{"name": m.name})
}
