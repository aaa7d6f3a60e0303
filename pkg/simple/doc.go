// Package simple implements scalar variables: boxed primitive values held
// as single graph nodes. Each scalar carries its value in the node's value
// property; Save persists the in-memory value, Load refreshes it. Scalars
// are hashable and may therefore be members of sets and keys of maps.
package simple
