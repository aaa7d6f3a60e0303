package composite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// String is a composite variable holding one character sequence, indexable
// by rune position. Strings are composites rather than scalars precisely so
// that indexing works naturally.
type String struct {
	element
	value []rune
}

var _ types.Hashable = (*String)(nil)

// NewString creates an unsaved string variable. An empty name yields an
// anonymous element.
func NewString(store types.Store, value string, name string) *String {
	return &String{
		element: element{store: store, name: types.ResolveName(name), kind: types.KindCompositeString},
		value:   []rune(value),
	}
}

// BoundString binds a handle to an already persisted node.
func BoundString(store types.Store, name string, value string) *String {
	s := NewString(store, value, name)
	s.saved = true
	return s
}

// Value returns the local character sequence as a string.
func (s *String) Value() string { return string(s.value) }

// Len returns the number of characters.
func (s *String) Len() int { return len(s.value) }

// Get returns the character at the zero-based index i.
func (s *String) Get(i int) (rune, error) {
	if i < 0 || i >= len(s.value) {
		return 0, fmt.Errorf("string index %d, length %d: %w", i, len(s.value), types.ErrIndexOutOfRange)
	}
	return s.value[i], nil
}

// Set replaces the character at index i in the local buffer. The change
// reaches the store on the next Save.
func (s *String) Set(i int, ch rune) error {
	if i < 0 || i >= len(s.value) {
		return fmt.Errorf("string index %d, length %d: %w", i, len(s.value), types.ErrIndexOutOfRange)
	}
	s.value[i] = ch
	return nil
}

// Save persists the current character sequence in one round trip.
func (s *String) Save(ctx context.Context) error {
	return s.save(ctx, map[string]any{"value": string(s.value)})
}

// Delete removes the node and all its relations.
func (s *String) Delete(ctx context.Context) error { return s.delete(ctx) }

// Clear empties the stored value with one compiled query and resets the
// local buffer.
func (s *String) Clear(ctx context.Context) error {
	if err := s.overwriteValue(ctx, ""); err != nil {
		return err
	}
	s.value = nil
	return nil
}

// Load refreshes the local buffer from the store.
func (s *String) Load(ctx context.Context) error {
	raw, err := s.fetchValue(ctx)
	if err != nil {
		return err
	}
	v, ok := raw.(string)
	if !ok {
		return fmt.Errorf("load %s %q: stored value %T: %w", s.kind, s.name, raw, types.ErrTypeMismatch)
	}
	s.value = []rune(v)
	return nil
}

// HashValue hashes the character sequence.
func (s *String) HashValue() (string, error) {
	return types.HashOf(string(s.value)), nil
}
