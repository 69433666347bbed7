// Package storetest holds behaviour every store driver must share. Driver
// packages call Run from their own tests with a factory for a fresh,
// migrated store.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store with migrations applied.
type Factory func(t *testing.T) store.Store

// Run exercises the full store contract against stores from newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("ClientRoundTrip", func(t *testing.T) { testClientRoundTrip(t, newStore(t)) })
	t.Run("ClientDuplicate", func(t *testing.T) { testClientDuplicate(t, newStore(t)) })
	t.Run("ClientUpdateScopes", func(t *testing.T) { testClientUpdateScopes(t, newStore(t)) })
	t.Run("ClientDelete", func(t *testing.T) { testClientDelete(t, newStore(t)) })
	t.Run("UserRoundTrip", func(t *testing.T) { testUserRoundTrip(t, newStore(t)) })
	t.Run("UserDuplicateUsername", func(t *testing.T) { testUserDuplicateUsername(t, newStore(t)) })
	t.Run("UserListFilter", func(t *testing.T) { testUserListFilter(t, newStore(t)) })
	t.Run("UserDeleteCascades", func(t *testing.T) { testUserDeleteCascades(t, newStore(t)) })
	t.Run("TxRollback", func(t *testing.T) { testTxRollback(t, newStore(t)) })
	t.Run("TxCommit", func(t *testing.T) { testTxCommit(t, newStore(t)) })
}

func newClient(id string, scopes ...scope.Scope) domain.Client {
	return domain.Client{
		ID:           id,
		HashedSecret: "deadbeef",
		Salt:         "$2b$12$abcdefghijklmnopqrstuv",
		Scopes:       scopes,
	}
}

func newUser(id, username string) domain.User {
	return domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		FirstName:    "Test",
		LastName:     "User",
		Scopes:       []scope.Scope{scope.PolicyRead},
	}
}

func testClientRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()

	in := newClient("client-1", scope.ClientRead, scope.ClientCreate)
	require.NoError(t, s.Clients().Create(ctx, in))

	got, err := s.Clients().Get(ctx, "client-1")
	require.NoError(t, err)
	require.Equal(t, in.ID, got.ID)
	require.Equal(t, in.HashedSecret, got.HashedSecret)
	require.Equal(t, in.Salt, got.Salt)
	require.Equal(t, in.Scopes, got.Scopes)
	require.Nil(t, got.UserID)
	require.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)

	_, err = s.Clients().Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testClientDuplicate(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.Clients().Create(ctx, newClient("dup")))
	err := s.Clients().Create(ctx, newClient("dup"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func testClientUpdateScopes(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.Clients().Create(ctx, newClient("c", scope.ClientRead)))
	require.NoError(t, s.Clients().UpdateScopes(ctx, "c", []scope.Scope{scope.PolicyRead, scope.RuleRead}))

	got, err := s.Clients().Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.PolicyRead, scope.RuleRead}, got.Scopes)

	require.NoError(t, s.Clients().UpdateScopes(ctx, "c", nil))
	got, err = s.Clients().Get(ctx, "c")
	require.NoError(t, err)
	require.Empty(t, got.Scopes)

	err = s.Clients().UpdateScopes(ctx, "missing", nil)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testClientDelete(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.Clients().Create(ctx, newClient("gone")))
	require.NoError(t, s.Clients().Delete(ctx, "gone"))

	_, err := s.Clients().Get(ctx, "gone")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Clients().Delete(ctx, "gone"), store.ErrNotFound)
}

func testUserRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()

	in := newUser("usr_1", "alice")
	require.NoError(t, s.Users().Create(ctx, in))

	got, err := s.Users().Get(ctx, "usr_1")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, in.PasswordHash, got.PasswordHash)
	require.Equal(t, []scope.Scope{scope.PolicyRead}, got.Scopes)
	require.Nil(t, got.LastLoginAt)

	byName, err := s.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, got.ID, byName.ID)

	require.NoError(t, s.Users().UpdateLastLogin(ctx, "usr_1"))
	got, err = s.Users().Get(ctx, "usr_1")
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)

	require.NoError(t, s.Users().UpdateScopes(ctx, "usr_1", []scope.Scope{scope.UserRead}))
	got, err = s.Users().Get(ctx, "usr_1")
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.UserRead}, got.Scopes)

	_, err = s.Users().GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Users().UpdateLastLogin(ctx, "nobody"), store.ErrNotFound)
}

func testUserDuplicateUsername(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, newUser("usr_1", "alice")))
	err := s.Users().Create(ctx, newUser("usr_2", "alice"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func testUserListFilter(t *testing.T, s store.Store) {
	ctx := context.Background()

	for i, name := range []string{"carol", "alice", "Alicia", "bob"} {
		require.NoError(t, s.Users().Create(ctx, newUser("usr_"+string(rune('a'+i)), name)))
	}

	all, err := s.Users().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)

	matched, err := s.Users().List(ctx, "ALI")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	for _, u := range matched {
		require.Contains(t, []string{"alice", "Alicia"}, u.Username)
	}
}

func testUserDeleteCascades(t *testing.T, s store.Store) {
	ctx := context.Background()

	u := newUser("usr_1", "alice")
	require.NoError(t, s.Users().Create(ctx, u))

	c := newClient("login-client", scope.PolicyRead)
	c.UserID = &u.ID
	require.NoError(t, s.Clients().Create(ctx, c))

	owned, err := s.Clients().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "login-client", owned.ID)
	require.NotNil(t, owned.UserID)
	require.Equal(t, u.ID, *owned.UserID)

	require.NoError(t, s.Users().Delete(ctx, u.ID))

	_, err = s.Clients().Get(ctx, "login-client")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Clients().Create(ctx, newClient("tx-client")))
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Clients().Get(ctx, "tx-client")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testTxCommit(t *testing.T, s store.Store) {
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Clients().Create(ctx, newClient("tx-client"))
	})
	require.NoError(t, err)

	_, err = s.Clients().Get(ctx, "tx-client")
	require.NoError(t, err)
}
