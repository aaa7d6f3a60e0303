// Package ads implements abstract data structures stored as graph patterns:
// AbstractSet, AbstractMap and AbstractDLList.
//
// Every mutating operation compiles to exactly one parameterized query that
// the store executes atomically; that single statement is the engines' sole
// consistency guarantee. Chaining several operations (a set-algebra
// expression, an append loop) is not atomic as a whole, and a concurrent
// writer can be observed between two calls. The engines never fetch a
// structure's contents client-side to recombine them in-process.
//
// In contrast to the composite variables, every mutation here takes effect
// remotely at the call, with no local buffer and no separate flush. The
// only lifecycle step is Save, which persists the anchor node itself.
//
// Structures are never removed with a plain delete: Clear empties them and
// Destroy removes the anchor, failing with ErrDestroyNonEmpty while members
// remain.
package ads
