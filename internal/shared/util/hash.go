package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// OwnerKey returns a stable, path-safe namespace segment for a user ID so raw
// identifiers (emails, provider subjects) never appear in storage keys.
func OwnerKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:16])
}
