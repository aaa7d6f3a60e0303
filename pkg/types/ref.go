package types

// Ref is a lightweight handle to an element already persisted in the store,
// carrying only its identity attributes. Engines return Refs when a query
// resolves an element whose concrete kind is not known at compile time;
// resolve a Ref to a full typed handle through the memory manager.
type Ref struct {
	name string
	kind string
}

var _ Element = Ref{}

// NewRef builds a handle for a persisted element.
func NewRef(name, kind string) Ref {
	return Ref{name: name, kind: kind}
}

func (r Ref) ElementName() string { return r.name }
func (r Ref) ElementKind() string { return r.kind }
func (r Ref) Saved() bool         { return true }
