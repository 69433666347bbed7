package jwe_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newCodec(t *testing.T, key []byte) *jwe.Codec {
	t.Helper()
	c, err := jwe.NewCodec(key)
	require.NoError(t, err)
	return c
}

func TestNewCodec_KeyLength(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 16, 31, 33, 64} {
		_, err := jwe.NewCodec(bytes.Repeat([]byte("k"), n))
		require.ErrorIs(t, err, jwe.ErrInvalidKey, "length %d", n)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c := newCodec(t, testKey)
	payload := []byte(`{"client-id":"abc","scopes":["client:read"],"iat":"2024-01-01T00:00:00Z"}`)

	token, err := c.Encrypt(payload)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 5)

	got, err := c.Decrypt(token)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestHeader(t *testing.T) {
	t.Parallel()

	token, err := newCodec(t, testKey).Encrypt([]byte("hello"))
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[0])
	require.NoError(t, err)

	var header map[string]any
	require.NoError(t, json.Unmarshal(raw, &header))
	require.Equal(t, "dir", header["alg"])
	require.Equal(t, "A256GCM", header["enc"])
}

func TestEncryptIsRandomised(t *testing.T) {
	t.Parallel()

	c := newCodec(t, testKey)
	a, err := c.Encrypt([]byte("same"))
	require.NoError(t, err)
	b, err := c.Encrypt([]byte("same"))
	require.NoError(t, err)

	// Fresh IV per token
	require.NotEqual(t, a, b)
}

func TestDecrypt_WrongKey(t *testing.T) {
	t.Parallel()

	token, err := newCodec(t, testKey).Encrypt([]byte("secret"))
	require.NoError(t, err)

	other := newCodec(t, []byte("fedcba9876543210fedcba9876543210"))
	_, err = other.Decrypt(token)
	require.ErrorIs(t, err, jwe.ErrDecrypt)
}

func TestDecrypt_TamperedByte(t *testing.T) {
	t.Parallel()

	c := newCodec(t, testKey)
	token, err := c.Encrypt([]byte(`{"client-id":"abc"}`))
	require.NoError(t, err)

	// Flip each byte in turn, none of them may decrypt
	for i := range len(token) {
		tampered := []byte(token)
		tampered[i] ^= 0x01

		_, err := c.Decrypt(string(tampered))
		require.ErrorIs(t, err, jwe.ErrDecrypt, "byte %d", i)
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	t.Parallel()

	c := newCodec(t, testKey)
	for _, token := range []string{"", "abc", "a.b.c", "a.b.c.d.e", "....."} {
		_, err := c.Decrypt(token)
		require.ErrorIs(t, err, jwe.ErrDecrypt, token)
	}
}
