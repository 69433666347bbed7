package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store/drivers/sqlite"
	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/stretchr/testify/require"
)

const (
	testRootID     = "root-client"
	testRootSecret = "root-secret"
	testRootSalt   = "$2b$12$abcdefghijklmnopqrstuv"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func testRoot() RootClientConfig {
	return RootClientConfig{
		ID:           testRootID,
		HashedSecret: cryptox.HashWithSalt([]byte(testRootSecret), []byte(testRootSalt)),
		Salt:         testRootSalt,
		Scopes:       scope.Default().All(),
	}
}

// fixedClock returns a clock reading *now, so tests can move time forward.
func fixedClock(now *time.Time) func() time.Time {
	return func() time.Time { return *now }
}

type fixture struct {
	store     store.Store
	directory *ClientDirectory
	tokens    *TokenService
	clients   *ClientService
	users     *UserService
	now       *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	codec, err := jwe.NewCodec(testKey)
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t)
	dir := &ClientDirectory{Store: s, Root: testRoot()}
	tokens := &TokenService{
		Codec:     codec,
		Directory: dir,
		Lifetime:  DefaultTokenLifetime,
		Now:       fixedClock(&now),
	}

	return &fixture{
		store:     s,
		directory: dir,
		tokens:    tokens,
		clients:   &ClientService{Directory: dir, Registry: scope.Default()},
		users: &UserService{
			Store:     s,
			Directory: dir,
			Tokens:    tokens,
			Registry:  scope.Default(),
			Hasher:    cryptox.PasswordHasher{Pepper: "test-pepper"},
		},
		now: &now,
	}
}

// sealClaims encrypts arbitrary claims, bypassing IssueToken.
func sealClaims(t *testing.T, claims any) string {
	t.Helper()

	codec, err := jwe.NewCodec(testKey)
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	token, err := codec.Encrypt(payload)
	require.NoError(t, err)
	return token
}

// untouchableStore fails the test if any repository is requested.
type untouchableStore struct {
	store.Store
	t *testing.T
}

func (s untouchableStore) Clients() store.Clients {
	s.t.Fatal("store must not be queried")
	return nil
}

func (s untouchableStore) Users() store.Users {
	s.t.Fatal("store must not be queried")
	return nil
}

// scriptedClients returns fixed errors for writes and delegates reads.
// onCreate, when set, runs before Create and its error is returned as is.
type scriptedClients struct {
	store.Clients
	createErr error
	updateErr error
	deleteErr error
	onCreate  func(ctx context.Context, client domain.Client) error
}

func (c scriptedClients) Create(ctx context.Context, client domain.Client) error {
	if c.onCreate != nil {
		if err := c.onCreate(ctx, client); err != nil {
			return err
		}
	}
	if c.createErr != nil {
		return c.createErr
	}
	return c.Clients.Create(ctx, client)
}

func (c scriptedClients) UpdateScopes(ctx context.Context, id string, scopes []scope.Scope) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	return c.Clients.UpdateScopes(ctx, id, scopes)
}

func (c scriptedClients) Delete(ctx context.Context, id string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	return c.Clients.Delete(ctx, id)
}

type scriptedStore struct {
	store.Store
	clients scriptedClients
}

func (s scriptedStore) Clients() store.Clients { return s.clients }
