package scope_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	all := scope.Default().All()
	require.Len(t, all, 38)
	require.True(t, slices.IsSorted(all), "All() must be sorted")

	// Listing twice gives the same answer and callers can't mutate the registry
	again := scope.Default().All()
	require.Equal(t, all, again)
	all[0] = "tampered:scope"
	require.NotEqual(t, all[0], scope.Default().All()[0])

	doc, ok := scope.Default().Describe(scope.ClientCreate)
	require.True(t, ok)
	require.Equal(t, "Create OAuth clients", doc)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	reg := scope.NewRegistry(map[scope.Scope]string{
		"client:read":   "read",
		"client:create": "create",
	})

	t.Run("accepts known scopes", func(t *testing.T) {
		got, err := reg.Validate([]string{"client:read", "client:create", "client:read"})
		require.NoError(t, err)
		require.Equal(t, []scope.Scope{"client:read", "client:create"}, got)
	})

	t.Run("empty request is valid", func(t *testing.T) {
		got, err := reg.Validate(nil)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("reports unknown scopes", func(t *testing.T) {
		_, err := reg.Validate([]string{"client:read", "bogus"})
		require.ErrorIs(t, err, scope.ErrInvalidScope)

		var invalid *scope.InvalidScopeError
		require.True(t, errors.As(err, &invalid))
		require.Equal(t, []string{"bogus"}, invalid.Invalid)
		require.Equal(t, []string{"client:create", "client:read"}, invalid.Valid)
	})

	t.Run("invalid list is sorted and deduplicated", func(t *testing.T) {
		_, err := reg.Validate([]string{"zeta", "alpha", "zeta"})

		var invalid *scope.InvalidScopeError
		require.True(t, errors.As(err, &invalid))
		require.Equal(t, []string{"alpha", "zeta"}, invalid.Invalid)
	})
}

func TestSubset(t *testing.T) {
	t.Parallel()

	super := []scope.Scope{scope.ClientRead, scope.ClientCreate}

	require.True(t, scope.Subset(nil, super))
	require.True(t, scope.Subset([]scope.Scope{scope.ClientRead}, super))
	require.True(t, scope.Subset(super, super))
	require.False(t, scope.Subset([]scope.Scope{scope.ClientDelete}, super))
	require.False(t, scope.Subset([]scope.Scope{scope.ClientRead}, nil))
}

func TestScopeParts(t *testing.T) {
	t.Parallel()

	require.Equal(t, "privacy-request", scope.PrivacyRequestReview.Resource())
	require.Equal(t, "review", scope.PrivacyRequestReview.Action())
	require.Equal(t, []string{"a:b", "c:d"}, scope.Strings(scope.FromStrings([]string{"a:b", " ", "c:d", "a:b"})))
}
