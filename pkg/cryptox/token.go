package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Common byte lengths for identifiers and secrets.
const (
	// TokenSize128 provides 128 bits of entropy (32 hex chars).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (64 hex chars).
	TokenSize256 = 32
)

// GenerateSecureRandomString returns the hex encoding of byteLength bytes read
// from the CSPRNG. The result is exactly 2*byteLength characters long.
//
// Client ids and client secrets are both produced here, typically with
// TokenSize128.
func GenerateSecureRandomString(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", fmt.Errorf("byte length must be positive, got %d", byteLength)
	}

	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
