package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecureRandomString(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"128-bit", TokenSize128},
		{"256-bit", TokenSize256},
		{"single byte", 1},
		{"odd size", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := GenerateSecureRandomString(tt.size)
			require.NoError(t, err)
			require.Len(t, s, 2*tt.size)

			_, err = hex.DecodeString(s)
			require.NoError(t, err, "output should be hex")
		})
	}
}

func TestGenerateSecureRandomString_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		s, err := GenerateSecureRandomString(size)
		require.Error(t, err)
		require.Empty(t, s)
	}
}

func TestGenerateSecureRandomString_Uniqueness(t *testing.T) {
	const count = 1000
	seen := make(map[string]bool, count)

	for range count {
		s, err := GenerateSecureRandomString(TokenSize128)
		require.NoError(t, err)
		require.NotContains(t, seen, s, "duplicate string generated")
		seen[s] = true
	}
}
