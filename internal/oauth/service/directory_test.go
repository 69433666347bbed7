package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/stretchr/testify/require"
)

func TestCreateClientAndSecret(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	scopes := []scope.Scope{scope.ClientRead, scope.PolicyRead}

	client, secret, err := f.directory.CreateClientAndSecret(ctx, 16, 24, scopes)
	require.NoError(t, err)
	require.Len(t, client.ID, 32)
	require.Len(t, secret, 48)
	require.Len(t, client.HashedSecret, 128)
	require.NotEqual(t, secret, client.HashedSecret)
	require.Equal(t, scopes, client.Scopes)

	res, err := f.directory.Get(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, OriginStored, res.Origin)
	require.False(t, res.IsRoot())
	require.Equal(t, client.HashedSecret, res.Client.HashedSecret)
	require.Equal(t, client.Salt, res.Client.Salt)

	require.True(t, f.directory.CredentialsValid(res.Client, secret))
	require.False(t, f.directory.CredentialsValid(res.Client, secret+"x"))
	flipped := []byte(secret)
	flipped[len(flipped)-1] ^= 1
	require.False(t, f.directory.CredentialsValid(res.Client, string(flipped)))
	require.False(t, f.directory.CredentialsValid(res.Client, ""))
}

func TestCreateClientAndSecret_Unique(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	a, secretA, err := f.directory.CreateClientAndSecret(ctx, 16, 16, nil)
	require.NoError(t, err)
	b, secretB, err := f.directory.CreateClientAndSecret(ctx, 16, 16, nil)
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.NotEqual(t, secretA, secretB)
	require.NotEqual(t, a.Salt, b.Salt)
	require.Empty(t, a.Scopes)
}

func TestCreateClientAndSecret_WithUserID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.CreateUser(ctx, UserCreate{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	client, _, err := f.directory.CreateClientAndSecret(ctx, 16, 16, user.Scopes, WithUserID(user.ID))
	require.NoError(t, err)
	require.NotNil(t, client.UserID)

	owned, err := f.directory.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, client.ID, owned.ID)
}

func TestCreateClientAndSecret_StoreFailures(t *testing.T) {
	t.Parallel()

	base := newTestStore(t)
	ctx := context.Background()

	t.Run("collision is a conflict", func(t *testing.T) {
		dir := &ClientDirectory{Store: scriptedStore{
			Store:   base,
			clients: scriptedClients{Clients: base.Clients(), createErr: store.ErrAlreadyExists},
		}}
		_, _, err := dir.CreateClientAndSecret(ctx, 16, 16, nil)
		require.ErrorIs(t, err, ErrClientConflict)
	})

	t.Run("other failures are write failures", func(t *testing.T) {
		cause := errors.New("disk full")
		dir := &ClientDirectory{Store: scriptedStore{
			Store:   base,
			clients: scriptedClients{Clients: base.Clients(), createErr: cause},
		}}
		_, _, err := dir.CreateClientAndSecret(ctx, 16, 16, nil)
		require.ErrorIs(t, err, ErrClientWriteFailed)
		require.ErrorIs(t, err, cause)
	})

	t.Run("bad lengths", func(t *testing.T) {
		dir := &ClientDirectory{Store: base}
		_, _, err := dir.CreateClientAndSecret(ctx, 0, 16, nil)
		require.Error(t, err)
	})
}

func TestGet_RootClientNeverTouchesStore(t *testing.T) {
	t.Parallel()

	dir := &ClientDirectory{Store: untouchableStore{t: t}, Root: testRoot()}

	res, err := dir.Get(context.Background(), testRootID)
	require.NoError(t, err)
	require.Equal(t, OriginSynthesized, res.Origin)
	require.True(t, res.IsRoot())
	require.Equal(t, testRootID, res.Client.ID)
	require.Equal(t, scope.Default().All(), res.Client.Scopes)
	require.True(t, dir.CredentialsValid(res.Client, testRootSecret))
	require.False(t, dir.CredentialsValid(res.Client, "wrong"))
}

func TestGet_RootMisconfigured(t *testing.T) {
	t.Parallel()

	dir := &ClientDirectory{
		Store: untouchableStore{t: t},
		Root:  RootClientConfig{ID: testRootID},
	}

	_, err := dir.Get(context.Background(), testRootID)
	require.ErrorIs(t, err, ErrConfiguration)
	require.ErrorIs(t, dir.Root.Validate(), ErrConfiguration)

	require.NoError(t, RootClientConfig{}.Validate(), "disabled root is valid")
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.directory.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrClientNotFound)

	_, err = f.directory.GetByUserID(context.Background(), "usr_nope")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateScopes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	client, _, err := f.directory.CreateClientAndSecret(ctx, 16, 16, []scope.Scope{scope.ClientRead})
	require.NoError(t, err)

	updated, err := f.directory.UpdateScopes(ctx, client, []scope.Scope{scope.PolicyRead})
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.PolicyRead}, updated.Scopes)

	res, err := f.directory.Get(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.PolicyRead}, res.Client.Scopes)

	_, err = f.directory.UpdateScopes(ctx, domain.Client{ID: "missing"}, nil)
	require.ErrorIs(t, err, ErrClientNotFound)

	root, err := f.directory.Get(ctx, testRootID)
	require.NoError(t, err)
	_, err = f.directory.UpdateScopes(ctx, root.Client, nil)
	require.ErrorIs(t, err, ErrRootClientProtected)
}

func TestUpdateScopes_WriteFailure(t *testing.T) {
	t.Parallel()

	base := newTestStore(t)
	dir := &ClientDirectory{Store: scriptedStore{
		Store:   base,
		clients: scriptedClients{Clients: base.Clients(), updateErr: errors.New("locked")},
	}}

	_, err := dir.UpdateScopes(context.Background(), domain.Client{ID: "c"}, nil)
	require.ErrorIs(t, err, ErrClientWriteFailed)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	client, _, err := f.directory.CreateClientAndSecret(ctx, 16, 16, nil)
	require.NoError(t, err)

	deleted, err := f.directory.Delete(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = f.directory.Delete(ctx, client.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = f.directory.Delete(ctx, testRootID)
	require.ErrorIs(t, err, ErrRootClientProtected)
}

func TestOriginString(t *testing.T) {
	require.Equal(t, "stored", OriginStored.String())
	require.Equal(t, "synthesized", OriginSynthesized.String())
	require.Equal(t, "unknown", Origin(7).String())
}
