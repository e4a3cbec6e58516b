package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))

	return hex.EncodeToString(h.Sum(nil))
}

// HashPin derives the stored digest for a pairing PIN from the session salt,
// so the plaintext PIN never sits in the registry.
func HashPin(salt, pin string) string {
	return HashString(salt + pin)
}
