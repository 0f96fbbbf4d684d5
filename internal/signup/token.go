// internal/signup/token.go
//
// Verification-token generation.
package signup

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes yields 64 hex characters, matching the column width.
const tokenBytes = 32

// NewToken returns a cryptographically random 64-character hex token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
