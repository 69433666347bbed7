// Package idx generates prefixed, lexicographically sortable identifiers such
// as "usr_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV".
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a prefixed ULID. The prefix names the kind of record it identifies.
type ID string

// Zero represents the zero value ID, don't use this unless its a placeholder.
const Zero ID = ""

// Well known prefixes.
const (
	PrefixUser    = "usr"
	PrefixRequest = "req"
)

const separator = "_"

// ErrInvalid reports a malformed identifier.
var ErrInvalid = errors.New("idx: invalid id")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a new identifier with the given prefix, stamped with the
// current UTC time.
func New(prefix string) ID {
	return NewAt(prefix, time.Now().UTC())
}

// NewAt generates an identifier at the provided time. Handy in tests.
func NewAt(prefix string, t time.Time) ID {
	mu.Lock()
	u := ulid.MustNew(ulid.Timestamp(t), entropy)
	mu.Unlock()

	if prefix == "" {
		return ID(u.String())
	}
	return ID(prefix + separator + u.String())
}

// Parse validates s and returns it as an ID. When prefix is non-empty the ID
// must carry exactly that prefix.
func Parse(prefix, s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}

	body := s
	if prefix != "" {
		var ok bool
		body, ok = strings.CutPrefix(s, prefix+separator)
		if !ok {
			return Zero, ErrInvalid
		}
	}

	if _, err := ulid.ParseStrict(body); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Prefix returns the record kind, or "" for unprefixed IDs.
func (id ID) Prefix() string {
	p, _, ok := strings.Cut(string(id), separator)
	if !ok {
		return ""
	}
	return p
}

// Time extracts the embedded UTC timestamp. Invalid IDs give the zero time.
func (id ID) Time() time.Time {
	body := string(id)
	if _, rest, ok := strings.Cut(body, separator); ok {
		body = rest
	}

	u, err := ulid.ParseStrict(body)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
