package simple

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// Integer is a scalar variable holding one signed integer.
type Integer struct {
	element
	value int64
}

var _ types.Hashable = (*Integer)(nil)

// NewInteger creates an unsaved integer variable. An empty name yields an
// anonymous element, reclaimable by the garbage collector once unreachable.
func NewInteger(store types.Store, value int64, name string) *Integer {
	return &Integer{
		element: element{store: store, name: types.ResolveName(name), kind: types.KindSimpleInteger},
		value:   value,
	}
}

// BoundInteger binds a handle to an already persisted node. Used when
// resolving stored objects by name; it does not verify the node exists.
func BoundInteger(store types.Store, name string, value int64) *Integer {
	v := NewInteger(store, value, name)
	v.saved = true
	return v
}

// Value returns the local value.
func (i *Integer) Value() int64 { return i.value }

// SetValue replaces the local value. The change reaches the store on the
// next Save.
func (i *Integer) SetValue(v int64) { i.value = v }

// Save persists the current value in one round trip.
func (i *Integer) Save(ctx context.Context) error {
	return i.save(ctx, map[string]any{"value": i.value})
}

// Delete removes the node and all its relations.
func (i *Integer) Delete(ctx context.Context) error { return i.delete(ctx) }

// Load refreshes the local value from the store.
func (i *Integer) Load(ctx context.Context) error {
	raw, err := i.fetchValue(ctx)
	if err != nil {
		return err
	}
	v, ok := raw.(int64)
	if !ok {
		return fmt.Errorf("load %s %q: stored value %T: %w", i.kind, i.name, raw, types.ErrTypeMismatch)
	}
	i.value = v
	return nil
}

// HashValue hashes the decimal rendering of the value. It is derived from
// the local value alone, so an unsaved throwaway handle can serve as a
// lookup key.
func (i *Integer) HashValue() (string, error) {
	return types.HashOf(strconv.FormatInt(i.value, 10)), nil
}
