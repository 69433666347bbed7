package cryptox

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	// SaltSize is the number of random bytes behind every generated salt.
	SaltSize = 16

	// saltPrefix keeps generated salts shape-compatible with bcrypt salts
	// ("$2b$12$" + 22 radix-64 characters) already stored by older deployments.
	saltPrefix = "$2b$12$"
)

// bcryptEncoding is the radix-64 alphabet bcrypt uses for salts.
var bcryptEncoding = base64.NewEncoding(
	"./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
).WithPadding(base64.NoPadding)

// HashWithSalt returns the lowercase hex SHA-512 digest of secret followed by
// salt. The output is always 128 characters and is stable across processes.
func HashWithSalt(secret, salt []byte) string {
	h := sha512.New()
	h.Write(secret)
	h.Write(salt)
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateSalt returns a fresh salt built from SaltSize CSPRNG bytes.
func GenerateSalt() (string, error) {
	buf := make([]byte, SaltSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return saltPrefix + bcryptEncoding.EncodeToString(buf), nil
}

// HashesEqual compares two hex digests in constant time.
func HashesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
