package domain

import (
	"time"

	"github.com/aussiebroadwan/oauthlib/pkg/scope"
)

// Client is an OAuth client able to exchange its credentials for tokens.
type Client struct {
	ID           string
	HashedSecret string // hex SHA-512 of secret+salt, never the plaintext
	Salt         string
	Scopes       []scope.Scope
	UserID       *string // set for the login client owned by a user
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasScopes reports whether the client holds every scope in want.
func (c Client) HasScopes(want ...scope.Scope) bool {
	return scope.Subset(want, c.Scopes)
}
