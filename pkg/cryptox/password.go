package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrPasswordMismatch is returned by VerifyPassword when the password is wrong.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrInvalidPasswordHash wraps every problem decoding a stored hash.
	ErrInvalidPasswordHash = errors.New("invalid password hash")
)

// argonParams are the tunables encoded into every PHC string, so hashes made
// with older parameters keep verifying after the defaults change.
type argonParams struct {
	memory  uint32 // KiB
	time    uint32
	threads uint8
}

var defaultArgon = argonParams{memory: 19 * 1024, time: 2, threads: 1}

const (
	argonKeyLength  = 32
	argonSaltLength = 16
	argonVersion    = "v=19"
)

func (p argonParams) String() string {
	return fmt.Sprintf("m=%d,t=%d,p=%d", p.memory, p.time, p.threads)
}

func parseArgonParams(s string) (argonParams, error) {
	var p argonParams
	seen := 0
	for field := range strings.SplitSeq(s, ",") {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return p, fmt.Errorf("parameter %q has no value", field)
		}
		var bits int
		switch k {
		case "m", "t":
			bits = 32
		case "p":
			bits = 8
		default:
			return p, fmt.Errorf("unknown parameter %q", k)
		}
		n, err := strconv.ParseUint(v, 10, bits)
		if err != nil || n == 0 {
			return p, fmt.Errorf("parameter %q: bad value %q", k, v)
		}
		switch k {
		case "m":
			p.memory = uint32(n)
		case "t":
			p.time = uint32(n)
		case "p":
			p.threads = uint8(n)
		}
		seen++
	}
	if seen != 3 {
		return p, errors.New("expected m, t and p parameters")
	}
	return p, nil
}

// PasswordHasher hashes user passwords with Argon2id. The pepper is appended
// to every password before hashing and never stored with the hash.
type PasswordHasher struct {
	Pepper string
}

func (h PasswordHasher) key(password string, salt []byte, p argonParams, n uint32) []byte {
	return argon2.IDKey([]byte(password+h.Pepper), salt, p.time, p.memory, p.threads, n)
}

// HashPassword returns "$argon2id$v=19$m=..,t=..,p=..$<salt>$<hash>" with
// unpadded standard base64 salt and hash.
func (h PasswordHasher) HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate password salt: %w", err)
	}

	enc := base64.RawStdEncoding
	return strings.Join([]string{
		"",
		"argon2id",
		argonVersion,
		defaultArgon.String(),
		enc.EncodeToString(salt),
		enc.EncodeToString(h.key(password, salt, defaultArgon, argonKeyLength)),
	}, "$"), nil
}

// VerifyPassword checks password against a hash from HashPassword. A wrong
// password is ErrPasswordMismatch, a corrupt hash ErrInvalidPasswordHash.
func (h PasswordHasher) VerifyPassword(password, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return fmt.Errorf("%w: expected 6 segments", ErrInvalidPasswordHash)
	}
	if parts[1] != "argon2id" {
		return fmt.Errorf("%w: algorithm %q", ErrInvalidPasswordHash, parts[1])
	}
	if parts[2] != argonVersion {
		return fmt.Errorf("%w: version %q", ErrInvalidPasswordHash, parts[2])
	}

	params, err := parseArgonParams(parts[3])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPasswordHash, err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %w", ErrInvalidPasswordHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%w: hash: %w", ErrInvalidPasswordHash, err)
	}
	if len(want) == 0 {
		return fmt.Errorf("%w: empty hash", ErrInvalidPasswordHash)
	}

	got := h.key(password, salt, params, uint32(len(want))) // #nosec G115 - decoded from a short PHC string
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
