package cypher

import (
	"fmt"
	"regexp"

	"github.com/mesh-intelligence/gads/pkg/types"
)

// ReservedBinding is the variable name a caller-supplied read fragment must
// bind its matched entities to. The compiler wraps the fragment and consumes
// rows through this name; see ValidateFragment.
const ReservedBinding = "item"

var reservedBindingRe = regexp.MustCompile(`\b` + ReservedBinding + `\b`)

// AnonNameExpr is a Cypher expression yielding a fresh anonymous element
// name server-side: 32 lowercase hex characters, the same shape
// types.AnonymousName produces client-side. Queries that mint nodes mid-
// statement (set algebra results, wrapper items) use it so the created
// nodes stay collectable.
const AnonNameExpr = "replace(randomUUID(), '-', '')"

// ValidateFragment checks that a caller-supplied read-only query fragment
// references the reserved binding. It returns ErrBindingNotFound otherwise,
// before any query executes. The check is lexical; the store remains the
// authority on whether the fragment is well-formed Cypher.
func ValidateFragment(fragment string) error {
	if !reservedBindingRe.MatchString(fragment) {
		return fmt.Errorf("fragment must bind matched entities to %q: %w", ReservedBinding, types.ErrBindingNotFound)
	}
	return nil
}

// Node renders a match pattern for an engine-created node of the given kind:
// the base label, the kind label, and the name bound to nameParam.
func Node(v, kind, nameParam string) string {
	return fmt.Sprintf("(%s:%s:%s {name: $%s})", v, types.LabelElement, kind, nameParam)
}

// AnyElement renders a match pattern for any referenceable element by name,
// engine-created or domain-owned.
func AnyElement(v, nameParam string) string {
	return fmt.Sprintf("(%s:%s {name: $%s})", v, types.LabelElement, nameParam)
}

// Hops renders a fixed-length directed traversal over one relationship
// type, e.g. Hops("DLL_NXT", 3) -> "-[:DLL_NXT*3]->". Zero hops yield a
// zero-length pattern, matching the start node itself. n must not be
// negative; callers bounds-check indices first.
func Hops(rel string, n int) string {
	if n < 0 {
		panic(fmt.Sprintf("cypher: negative hop count %d", n))
	}
	return fmt.Sprintf("-[:%s*%d]->", rel, n)
}

// CreateElement compiles the initial persist of an element node: one CREATE
// carrying the base label, the kind label, the kind discriminator property,
// and any kind-specific properties. The store's uniqueness constraint on
// name arbitrates races between two handles persisting the same name.
func CreateElement(kind, name string, props map[string]any) (string, map[string]any) {
	params := map[string]any{"name": name, "kind": kind}
	set := ""
	for k := range props {
		set += fmt.Sprintf(", n.%s = $%s", k, k)
		params[k] = props[k]
	}
	query := fmt.Sprintf(
		"CREATE (n:%s:%s) SET n.name = $name, n.kind = $kind%s",
		types.LabelElement, kind, set,
	)
	return query, params
}

// UpdateElement compiles the re-save of an already persisted element: match
// by name and overwrite the kind-specific properties.
func UpdateElement(kind, name string, props map[string]any) (string, map[string]any) {
	params := map[string]any{"name": name}
	set := ""
	for k := range props {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("n.%s = $%s", k, k)
		params[k] = props[k]
	}
	query := fmt.Sprintf("MATCH %s SET %s", Node("n", kind, "name"), set)
	return query, params
}

// DeleteElement compiles the removal of an element node and all its
// relations. It returns the count of deleted nodes so callers can detect a
// name that no longer resolves.
func DeleteElement(kind, name string) (string, map[string]any) {
	query := fmt.Sprintf(
		"MATCH %s WITH n, count(n) AS found DETACH DELETE n RETURN found",
		Node("n", kind, "name"),
	)
	return query, map[string]any{"name": name}
}

// FetchValue compiles the read of an element's value property.
func FetchValue(kind, name string) (string, map[string]any) {
	query := fmt.Sprintf("MATCH %s RETURN n.value AS value", Node("n", kind, "name"))
	return query, map[string]any{"name": name}
}
