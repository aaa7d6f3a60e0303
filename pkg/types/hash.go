package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashOf reduces a canonical value rendering to the engine's content-hash
// form: lowercase hex SHA-256. All Hashable implementations go through this
// so hashes stay comparable across kinds and processes.
func HashOf(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
