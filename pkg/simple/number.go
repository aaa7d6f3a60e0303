package simple

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// Number is a scalar variable holding one double-precision real number.
type Number struct {
	element
	value float64
}

var _ types.Hashable = (*Number)(nil)

// NewNumber creates an unsaved number variable. An empty name yields an
// anonymous element.
func NewNumber(store types.Store, value float64, name string) *Number {
	return &Number{
		element: element{store: store, name: types.ResolveName(name), kind: types.KindSimpleNumber},
		value:   value,
	}
}

// BoundNumber binds a handle to an already persisted node.
func BoundNumber(store types.Store, name string, value float64) *Number {
	v := NewNumber(store, value, name)
	v.saved = true
	return v
}

// Value returns the local value.
func (n *Number) Value() float64 { return n.value }

// SetValue replaces the local value. The change reaches the store on the
// next Save.
func (n *Number) SetValue(v float64) { n.value = v }

// Save persists the current value in one round trip.
func (n *Number) Save(ctx context.Context) error {
	return n.save(ctx, map[string]any{"value": n.value})
}

// Delete removes the node and all its relations.
func (n *Number) Delete(ctx context.Context) error { return n.delete(ctx) }

// Load refreshes the local value from the store. Stores hand integers back
// for round values, so both numeric shapes are accepted.
func (n *Number) Load(ctx context.Context) error {
	raw, err := n.fetchValue(ctx)
	if err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		n.value = v
	case int64:
		n.value = float64(v)
	default:
		return fmt.Errorf("load %s %q: stored value %T: %w", n.kind, n.name, raw, types.ErrTypeMismatch)
	}
	return nil
}

// HashValue hashes the shortest round-trip rendering of the value.
func (n *Number) HashValue() (string, error) {
	return types.HashOf(strconv.FormatFloat(n.value, 'g', -1, 64)), nil
}
