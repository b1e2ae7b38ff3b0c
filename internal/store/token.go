package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSessionToken returns a 32-byte crypto-random token, hex encoded.
func NewSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
