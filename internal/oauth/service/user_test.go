package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.CreateUser(ctx, UserCreate{
		Username:  "alice",
		Password:  "Secr3t!pass",
		FirstName: "Alice",
		LastName:  "Liddell",
	})
	require.NoError(t, err)
	require.Contains(t, user.ID, "usr_")
	require.NotEqual(t, "Secr3t!pass", user.PasswordHash)
	require.Equal(t, DefaultUserScopes, user.Scopes)

	got, err := f.users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.FirstName)

	_, err = f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "x"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.CreateUser(ctx, UserCreate{Username: "", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = f.users.CreateUser(ctx, UserCreate{Username: "has space", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = f.users.CreateUser(ctx, UserCreate{Username: "bob"})
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = f.users.CreateUser(ctx, UserCreate{Username: "bob", Password: "x", Scopes: []string{"nope:nope"}})
	require.ErrorIs(t, err, scope.ErrInvalidScope)

	user, err := f.users.CreateUser(ctx, UserCreate{Username: "bob", Password: "x", Scopes: []string{"user:read"}})
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.UserRead}, user.Scopes)
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "malice"} {
		_, err := f.users.CreateUser(ctx, UserCreate{Username: name, Password: "pw"})
		require.NoError(t, err)
	}

	all, err := f.users.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	some, err := f.users.ListUsers(ctx, "LIC")
	require.NoError(t, err)
	require.Len(t, some, 2)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw", Scopes: []string{"user:read"}})
	require.NoError(t, err)

	user, token, err := f.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.NotNil(t, user.LastLoginAt)

	client, err := f.tokens.VerifyOAuthClient(ctx, token, scope.UserRead)
	require.NoError(t, err)
	require.NotNil(t, client.UserID)
	require.Equal(t, created.ID, *client.UserID)

	// A second login reuses the same client
	_, token, err = f.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	again, err := f.tokens.VerifyOAuthClient(ctx, token)
	require.NoError(t, err)
	require.Equal(t, client.ID, again.ID)
}

// loginUsers returns a UserService whose client writes go through clients.
func loginUsers(f *fixture, clients scriptedClients) *UserService {
	dir := &ClientDirectory{Store: scriptedStore{Store: f.store, clients: clients}, Root: testRoot()}
	users := *f.users
	users.Directory = dir
	return &users
}

func TestLogin_ConcurrentFirstLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw", Scopes: []string{"user:read"}})
	require.NoError(t, err)

	// Another login wins the race to create the user's client.
	var winner domain.Client
	users := loginUsers(f, scriptedClients{
		Clients: f.store.Clients(),
		onCreate: func(ctx context.Context, c domain.Client) error {
			require.NotNil(t, c.UserID)
			var createErr error
			winner, _, createErr = f.directory.CreateClientAndSecret(ctx, 16, 16, c.Scopes, WithUserID(*c.UserID))
			require.NoError(t, createErr)
			return store.ErrAlreadyExists
		},
	})

	_, token, err := users.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	client, err := f.tokens.VerifyOAuthClient(ctx, token, scope.UserRead)
	require.NoError(t, err)
	require.Equal(t, winner.ID, client.ID)
	require.Equal(t, created.ID, *client.UserID)
}

func TestLogin_ClientIDCollision(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	users := loginUsers(f, scriptedClients{Clients: f.store.Clients(), createErr: store.ErrAlreadyExists})

	_, _, err = users.Login(ctx, "alice", "pw")
	require.ErrorIs(t, err, ErrClientConflict)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, _, err = f.users.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.users.Login(ctx, "nobody", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePermissions_RevokesStaleTokens(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw", Scopes: []string{"user:read", "user:delete"}})
	require.NoError(t, err)
	_, token, err := f.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	scopes, err := f.users.UpdatePermissions(ctx, user.ID, []string{"user:read"})
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.UserRead}, scopes)

	got, err := f.users.GetPermissions(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.UserRead}, got)

	client, err := f.directory.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.UserRead}, client.Scopes)

	_, err = f.tokens.VerifyOAuthClient(ctx, token, scope.UserRead)
	require.ErrorIs(t, err, ErrAuthorizationFailed)
}

func TestUpdatePermissions_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.UpdatePermissions(ctx, "usr_missing", []string{"user:read"})
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.users.GetPermissions(ctx, "usr_missing")
	require.ErrorIs(t, err, ErrUserNotFound)

	user, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	_, err = f.users.UpdatePermissions(ctx, user.ID, []string{"bogus"})
	require.ErrorIs(t, err, scope.ErrInvalidScope)

	// No login client yet, only the user row changes
	scopes, err := f.users.UpdatePermissions(ctx, user.ID, []string{"policy:read"})
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.PolicyRead}, scopes)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	alice, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	bob, err := f.users.CreateUser(ctx, UserCreate{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	_, token, err := f.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	aliceClient, err := f.tokens.VerifyOAuthClient(ctx, token)
	require.NoError(t, err)

	// Alice may not delete Bob
	err = f.users.DeleteUser(ctx, aliceClient, bob.ID)
	require.ErrorIs(t, err, ErrForbidden)

	// Root may
	require.NoError(t, f.users.DeleteUser(ctx, domain.Client{ID: testRootID}, bob.ID))

	// Alice may delete herself, and her login client goes with her
	require.NoError(t, f.users.DeleteUser(ctx, aliceClient, alice.ID))
	_, err = f.directory.Get(ctx, aliceClient.ID)
	require.ErrorIs(t, err, ErrClientNotFound)

	err = f.users.DeleteUser(ctx, domain.Client{ID: testRootID}, alice.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
