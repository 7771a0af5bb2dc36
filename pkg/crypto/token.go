package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken derives a fixed-length key from a bearer token, so raw tokens
// are never used as cache keys.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
