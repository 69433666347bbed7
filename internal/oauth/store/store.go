package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so a Tx can
// hand out the same repositories bound to the transaction.
type Store interface {
	Clients() Clients
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A nil return commits, anything
	// else rolls back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Repository is the primary-key access every persisted entity supports.
type Repository[T any, K comparable] interface {
	// Get returns ErrNotFound when no row has the key.
	Get(ctx context.Context, id K) (T, error)

	// Create returns ErrAlreadyExists on a primary or unique key collision.
	Create(ctx context.Context, entity T) error

	// Delete returns ErrNotFound when no row was removed.
	Delete(ctx context.Context, id K) error
}

type Clients interface {
	Repository[domain.Client, string]

	// GetByUserID returns the login client owned by a user.
	GetByUserID(ctx context.Context, userID string) (domain.Client, error)

	// UpdateScopes overwrites the scopes and bumps updated_at.
	UpdateScopes(ctx context.Context, id string, scopes []scope.Scope) error
}

type Users interface {
	Repository[domain.User, string]

	// GetByUsername is used during login.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// List returns users ordered by username, optionally filtered by a
	// case-insensitive username substring.
	List(ctx context.Context, usernameFilter string) ([]domain.User, error)

	// UpdateScopes overwrites the user's permissions.
	UpdateScopes(ctx context.Context, id string, scopes []scope.Scope) error

	// UpdateLastLogin records a successful login.
	UpdateLastLogin(ctx context.Context, id string) error
}
