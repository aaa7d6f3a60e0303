package types

import "errors"

// Structural precondition errors. These are raised locally, before any query
// is issued, and are never silently recovered.
var (
	ErrNotInitialized    = errors.New("kind has no default and requires an explicit value")
	ErrDestroyNonEmpty   = errors.New("destroy called on a non-empty structure")
	ErrContainerNotEmpty = errors.New("container is not empty")
	ErrBindingNotFound   = errors.New("reserved binding absent from query fragment")
	ErrUnsavedElement    = errors.New("operation requires a saved element")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrTypeMismatch      = errors.New("value does not satisfy the target type")
	ErrInvalidName       = errors.New("invalid element name")
)

// Store-observed errors. ErrNameCollision is the translation of the store's
// uniqueness-constraint violation on PersistentElement.name; every other
// store failure propagates unmodified.
var (
	ErrNameCollision  = errors.New("element name already in use")
	ErrObjectNotFound = errors.New("object not found")
)
