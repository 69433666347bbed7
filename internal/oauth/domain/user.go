package domain

import (
	"time"

	"github.com/aussiebroadwan/oauthlib/pkg/scope"
)

// User is a human operator who signs in with a username and password.
type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id PHC string
	FirstName    string
	LastName     string
	Scopes       []scope.Scope // permissions granted to the user's login client
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
