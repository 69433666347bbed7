package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/stretchr/testify/require"
)

func TestClientService_CreateClient(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	client, secret, err := f.clients.CreateClient(ctx, []string{"client:read", "policy:read"})
	require.NoError(t, err)
	require.NotEmpty(t, secret)
	require.Len(t, client.ID, 32, "defaults to 16 byte ids")

	got, err := f.clients.GetClientScopes(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.ClientRead, scope.PolicyRead}, got)

	token, err := f.tokens.AcquireAccessToken(ctx, &ClientCredentials{ID: client.ID, Secret: secret}, nil)
	require.NoError(t, err)
	_, err = f.tokens.VerifyOAuthClient(ctx, token, scope.PolicyRead)
	require.NoError(t, err)
}

func TestClientService_CreateClient_InvalidScopes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	guarded := scriptedStore{Store: f.store, clients: scriptedClients{
		Clients: f.store.Clients(),
		onCreate: func(context.Context, domain.Client) error {
			t.Error("nothing is written when validation fails")
			return nil
		},
	}}
	svc := &ClientService{
		Directory: &ClientDirectory{Store: guarded, Root: testRoot()},
		Registry:  scope.Default(),
	}

	_, _, err := svc.CreateClient(ctx, []string{"client:read", "made:up"})
	require.ErrorIs(t, err, scope.ErrInvalidScope)

	var invalid *scope.InvalidScopeError
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, []string{"made:up"}, invalid.Invalid)
	require.Len(t, invalid.Valid, len(scope.Default().All()))
}

func TestClientService_SetClientScopes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	client, _, err := f.clients.CreateClient(ctx, []string{"client:read"})
	require.NoError(t, err)

	updated, err := f.clients.SetClientScopes(ctx, client.ID, []string{"rule:read", "rule:delete"})
	require.NoError(t, err)
	require.Equal(t, []scope.Scope{scope.RuleRead, scope.RuleDelete}, updated.Scopes)

	_, err = f.clients.SetClientScopes(ctx, "missing", []string{"rule:read"})
	require.ErrorIs(t, err, ErrClientNotFound)

	_, err = f.clients.SetClientScopes(ctx, client.ID, []string{"rule:fly"})
	require.ErrorIs(t, err, scope.ErrInvalidScope)

	_, err = f.clients.SetClientScopes(ctx, testRootID, []string{"rule:read"})
	require.ErrorIs(t, err, ErrRootClientProtected)
}

func TestClientService_GetClientScopes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.clients.GetClientScopes(ctx, "missing")
	require.ErrorIs(t, err, ErrClientNotFound)

	root, err := f.clients.GetClientScopes(ctx, testRootID)
	require.NoError(t, err)
	require.Equal(t, scope.Default().All(), root)
}

func TestClientService_DeleteClient(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	client, _, err := f.clients.CreateClient(ctx, nil)
	require.NoError(t, err)

	deleted, err := f.clients.DeleteClient(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = f.clients.DeleteClient(ctx, client.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = f.clients.DeleteClient(ctx, testRootID)
	require.ErrorIs(t, err, ErrRootClientProtected)
}

func TestClientService_ListScopes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	all := f.clients.ListScopes()
	require.True(t, slices.IsSorted(all))
	require.Equal(t, scope.Default().All(), all)
}
