package crypto

import "crypto/rand"

const (
	// 64-character URL-safe alphabet: every 6-bit value maps to exactly
	// one character, so no rejection sampling is needed.
	nanoidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	nanoidSize     = 22 // 22 * 6 = 132 bits (uuid is 128 bits) of entropy
)

// NanoID generates a compact, URL-safe random identifier.
func NanoID() (string, error) {
	buf := make([]byte, nanoidSize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	id := make([]byte, nanoidSize)
	for i, b := range buf {
		id[i] = nanoidAlphabet[b&63]
	}
	return string(id), nil
}
