package cryptox

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashWithSalt(t *testing.T) {
	t.Run("matches sha512 of secret then salt", func(t *testing.T) {
		sum := sha512.Sum512([]byte("secretsalt"))
		require.Equal(t, hex.EncodeToString(sum[:]), HashWithSalt([]byte("secret"), []byte("salt")))
	})

	t.Run("is deterministic", func(t *testing.T) {
		a := HashWithSalt([]byte("s3cr3t"), []byte("$2b$12$abcdefghijklmnopqrstuu"))
		b := HashWithSalt([]byte("s3cr3t"), []byte("$2b$12$abcdefghijklmnopqrstuu"))
		require.Equal(t, a, b)
		require.Len(t, a, 128)
		require.Equal(t, strings.ToLower(a), a)
	})

	t.Run("salt changes the digest", func(t *testing.T) {
		a := HashWithSalt([]byte("s3cr3t"), []byte("salt-a"))
		b := HashWithSalt([]byte("s3cr3t"), []byte("salt-b"))
		require.NotEqual(t, a, b)
	})
}

func TestGenerateSalt(t *testing.T) {
	const count = 1000
	seen := make(map[string]bool, count)

	for range count {
		salt, err := GenerateSalt()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(salt, "$2b$12$"))

		// 16 bytes of radix-64 without padding is 22 characters
		require.Len(t, salt, len("$2b$12$")+22)
		require.NotContains(t, seen, salt)
		seen[salt] = true
	}
}

func TestHashesEqual(t *testing.T) {
	h := HashWithSalt([]byte("a"), []byte("b"))
	require.True(t, HashesEqual(h, h))
	require.False(t, HashesEqual(h, HashWithSalt([]byte("a"), []byte("c"))))
	require.False(t, HashesEqual(h, ""))
}
