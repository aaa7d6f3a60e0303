package composite

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// dateLayout is the canonical wire form of a date element.
const dateLayout = "2006-01-02"

// canonSep separates element renderings inside an array's canonical form.
// Unit separator, so element boundaries cannot be forged by content.
const canonSep = "\x1f"

// codec maps between the native element type, its canonical hash rendering,
// and its wire form.
type codec[T any] struct {
	canon func(T) string
	wire  func(T) any
	parse func(any) (T, bool)
}

// Array is a composite variable holding a homogeneous ordered sequence of
// scalars in a single node's value property.
type Array[T any] struct {
	element
	values []T
	codec  codec[T]
}

// NewArrayString creates an unsaved array of strings.
func NewArrayString(store types.Store, values []string, name string) *Array[string] {
	return newArray(store, values, name, types.KindCompositeArrayString, codec[string]{
		canon: func(v string) string { return v },
		wire:  func(v string) any { return v },
		parse: func(raw any) (string, bool) { v, ok := raw.(string); return v, ok },
	})
}

// NewArrayNumber creates an unsaved array of double-precision numbers.
func NewArrayNumber(store types.Store, values []float64, name string) *Array[float64] {
	return newArray(store, values, name, types.KindCompositeArrayNumber, codec[float64]{
		canon: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		wire:  func(v float64) any { return v },
		parse: func(raw any) (float64, bool) {
			switch v := raw.(type) {
			case float64:
				return v, true
			case int64:
				return float64(v), true
			}
			return 0, false
		},
	})
}

// NewArrayDate creates an unsaved array of calendar dates. Dates travel as
// canonical yyyy-mm-dd strings.
func NewArrayDate(store types.Store, values []time.Time, name string) *Array[time.Time] {
	return newArray(store, values, name, types.KindCompositeArrayDate, codec[time.Time]{
		canon: func(v time.Time) string { return v.Format(dateLayout) },
		wire:  func(v time.Time) any { return v.Format(dateLayout) },
		parse: func(raw any) (time.Time, bool) {
			s, ok := raw.(string)
			if !ok {
				return time.Time{}, false
			}
			v, err := time.Parse(dateLayout, s)
			return v, err == nil
		},
	})
}

// BoundArrayString binds a handle to an already persisted node.
func BoundArrayString(store types.Store, name string, values []string) *Array[string] {
	a := NewArrayString(store, values, name)
	a.saved = true
	return a
}

// BoundArrayNumber binds a handle to an already persisted node.
func BoundArrayNumber(store types.Store, name string, values []float64) *Array[float64] {
	a := NewArrayNumber(store, values, name)
	a.saved = true
	return a
}

// BoundArrayDate binds a handle to an already persisted node.
func BoundArrayDate(store types.Store, name string, values []time.Time) *Array[time.Time] {
	a := NewArrayDate(store, values, name)
	a.saved = true
	return a
}

func newArray[T any](store types.Store, values []T, name, kind string, c codec[T]) *Array[T] {
	buf := make([]T, len(values))
	copy(buf, values)
	return &Array[T]{
		element: element{store: store, name: types.ResolveName(name), kind: kind},
		values:  buf,
		codec:   c,
	}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.values) }

// Get returns the element at the zero-based index i.
func (a *Array[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(a.values) {
		return zero, fmt.Errorf("%s index %d, length %d: %w", a.kind, i, len(a.values), types.ErrIndexOutOfRange)
	}
	return a.values[i], nil
}

// Set replaces the element at index i in the local buffer. The change
// reaches the store on the next Save.
func (a *Array[T]) Set(i int, v T) error {
	if i < 0 || i >= len(a.values) {
		return fmt.Errorf("%s index %d, length %d: %w", a.kind, i, len(a.values), types.ErrIndexOutOfRange)
	}
	a.values[i] = v
	return nil
}

// Values returns a copy of the local buffer.
func (a *Array[T]) Values() []T {
	out := make([]T, len(a.values))
	copy(out, a.values)
	return out
}

// Save persists the current content in one round trip.
func (a *Array[T]) Save(ctx context.Context) error {
	wire := make([]any, len(a.values))
	for i, v := range a.values {
		wire[i] = a.codec.wire(v)
	}
	return a.save(ctx, map[string]any{"value": wire})
}

// Delete removes the node and all its relations.
func (a *Array[T]) Delete(ctx context.Context) error { return a.delete(ctx) }

// Clear empties the stored value with one compiled query and resets the
// local buffer.
func (a *Array[T]) Clear(ctx context.Context) error {
	if err := a.overwriteValue(ctx, []any{}); err != nil {
		return err
	}
	a.values = nil
	return nil
}

// Load refreshes the local buffer from the store.
func (a *Array[T]) Load(ctx context.Context) error {
	raw, err := a.fetchValue(ctx)
	if err != nil {
		return err
	}
	list, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("load %s %q: stored value %T: %w", a.kind, a.name, raw, types.ErrTypeMismatch)
	}
	values := make([]T, len(list))
	for i, item := range list {
		v, ok := a.codec.parse(item)
		if !ok {
			return fmt.Errorf("load %s %q: element %d is %T: %w", a.kind, a.name, i, item, types.ErrTypeMismatch)
		}
		values[i] = v
	}
	a.values = values
	return nil
}

// HashValue hashes the canonical renderings of all elements in order.
func (a *Array[T]) HashValue() (string, error) {
	parts := make([]string, len(a.values))
	for i, v := range a.values {
		parts[i] = a.codec.canon(v)
	}
	return types.HashOf(strings.Join(parts, canonSep)), nil
}

var _ types.Hashable = (*Array[string])(nil)
