package types

import (
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

// AnonymousNamePattern matches names produced by AnonymousName. The garbage
// collector passes it verbatim to the store as a regular expression, so it
// must stay valid in both Go and Cypher.
const AnonymousNamePattern = "^[0-9a-f]{32}$"

var anonymousNameRe = regexp.MustCompile(AnonymousNamePattern)

// AnonymousName generates an element name from a uniform random 128-bit
// identifier, rendered as 32 lowercase hex characters.
func AnonymousName() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// IsAnonymousName reports whether name matches the generated-name pattern.
// Elements with such names are reclaimable by the garbage collector once
// nothing named reaches them.
func IsAnonymousName(name string) bool {
	return anonymousNameRe.MatchString(name)
}

// ResolveName returns name unchanged when non-empty, otherwise a fresh
// anonymous name. Constructors use it to implement the optional-name
// convention; an empty name never reaches the store.
func ResolveName(name string) string {
	if name == "" {
		return AnonymousName()
	}
	return name
}
