package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user or guest ID to a single hex path segment so object
// keys never carry the raw identity.
func HashUserKey(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
