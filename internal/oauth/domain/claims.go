package domain

import (
	"errors"
	"time"
)

// Claims is the payload sealed inside an access token.
type Claims struct {
	ClientID string   `json:"client-id,omitempty"`
	Scopes   []string `json:"scopes"`
	IssuedAt string   `json:"iat,omitempty"`
}

// ErrMissingIssuedAt is returned by IssuedTime for claims without "iat".
var ErrMissingIssuedAt = errors.New("claims: missing iat")

// issuedAtLayouts are tried in order. The last two cover timestamps without
// a zone, which are read as UTC.
var issuedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// FormatIssuedAt renders t the way it is stored in Claims.IssuedAt.
func FormatIssuedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// IssuedTime parses IssuedAt.
func (c Claims) IssuedTime() (time.Time, error) {
	if c.IssuedAt == "" {
		return time.Time{}, ErrMissingIssuedAt
	}

	var lastErr error
	for _, layout := range issuedAtLayouts {
		t, err := time.Parse(layout, c.IssuedAt)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
