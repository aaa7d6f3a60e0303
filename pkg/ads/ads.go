package ads

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/gads/pkg/cypher"
	"github.com/mesh-intelligence/gads/pkg/types"
)

// structure carries the identity state shared by the three engines. Unlike
// scalar and composite variables, a structure's anchor is never deleted
// directly; removal goes through Clear and Destroy.
type structure struct {
	store types.Store
	name  string
	kind  string
	saved bool
}

func (s *structure) ElementName() string { return s.name }
func (s *structure) ElementKind() string { return s.kind }
func (s *structure) Saved() bool         { return s.saved }

// HashValue hashes the structure's name, not its contents: structures are
// equal only to themselves, so nesting one into a set is identity-based.
// Contents change without the wrapper moving.
func (s *structure) HashValue() (string, error) {
	if !s.saved {
		return "", fmt.Errorf("hash %s %q: %w", s.kind, s.name, types.ErrUnsavedElement)
	}
	return types.HashOf(s.name), nil
}

func (s *structure) save(ctx context.Context, props map[string]any) error {
	if s.saved {
		return nil
	}
	query, params := cypher.CreateElement(s.kind, s.name, props)
	if _, err := s.store.Execute(ctx, query, params); err != nil {
		return err
	}
	s.saved = true
	return nil
}

// requireSaved guards operations that address the remote anchor.
func (s *structure) requireSaved(op string) error {
	if !s.saved {
		return fmt.Errorf("%s %s %q: %w", op, s.kind, s.name, types.ErrUnsavedElement)
	}
	return nil
}

// requireOperand guards operations that wrap another element into the
// structure: the element's node must already exist in the store.
func (s *structure) requireOperand(op string, el types.Element) error {
	if !el.Saved() {
		return fmt.Errorf("%s %s %q: operand %q: %w", op, s.kind, s.name, el.ElementName(), types.ErrUnsavedElement)
	}
	return nil
}

func (s *structure) notFound(op string) error {
	return fmt.Errorf("%s %s %q: %w", op, s.kind, s.name, types.ErrObjectNotFound)
}

// destroyGuarded executes a compiled destroy query that conditionally
// deletes the anchor and returns the member count observed at execution.
// A non-zero count means nothing was deleted.
func (s *structure) destroyGuarded(ctx context.Context, query string, params map[string]any) error {
	rows, err := s.store.Execute(ctx, query, params)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return s.notFound("destroy")
	}
	if n := intValue(rows[0]["members"]); n > 0 {
		return fmt.Errorf("destroy %s %q: %d members remain: %w", s.kind, s.name, n, types.ErrDestroyNonEmpty)
	}
	s.saved = false
	return nil
}

// intValue normalizes the numeric types a driver row can carry.
func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func boolValue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
