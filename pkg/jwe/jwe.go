// Package jwe encrypts and decrypts compact JSON Web Encryption tokens using
// direct symmetric key agreement ("dir") with AES-256-GCM content encryption.
package jwe

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/go-jose/go-jose/v4"
)

// KeySize is the exact key length A256GCM requires.
const KeySize = 32

var (
	// ErrInvalidKey is returned by NewCodec for keys of the wrong length.
	ErrInvalidKey = errors.New("jwe: key must be exactly 32 bytes")

	// ErrDecrypt covers every decrypt failure: malformed tokens, tampering and
	// wrong keys all look the same to callers.
	ErrDecrypt = errors.New("jwe: unable to decrypt token")
)

// compactSegments is the number of dot separated parts of a compact JWE.
const compactSegments = 5

// Codec holds the shared symmetric key. It is safe for concurrent use.
type Codec struct {
	key       []byte
	encrypter jose.Encrypter
}

// NewCodec validates key and prepares an encrypter for it.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(key))
	}

	k := make([]byte, KeySize)
	copy(k, key)

	enc, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: k},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("jwe: create encrypter: %w", err)
	}

	return &Codec{key: k, encrypter: enc}, nil
}

// Encrypt seals payload and returns the compact serialization.
func (c *Codec) Encrypt(payload []byte) (string, error) {
	obj, err := c.encrypter.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("jwe: encrypt: %w", err)
	}
	token, err := obj.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("jwe: serialize: %w", err)
	}
	return token, nil
}

// Decrypt opens a compact token produced by Encrypt with the same key.
func (c *Codec) Decrypt(token string) ([]byte, error) {
	if err := checkCanonical(token); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	obj, err := jose.ParseEncrypted(
		token,
		[]jose.KeyAlgorithm{jose.DIRECT},
		[]jose.ContentEncryption{jose.A256GCM},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	payload, err := obj.Decrypt(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return payload, nil
}

// checkCanonical rejects tokens whose segments are not strict base64url.
// Lenient decoders ignore the spare bits of the final character, so without
// this some single character edits would still decrypt.
func checkCanonical(token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != compactSegments {
		return fmt.Errorf("expected %d segments, got %d", compactSegments, len(parts))
	}
	for i, p := range parts {
		if _, err := base64.RawURLEncoding.Strict().DecodeString(p); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}
