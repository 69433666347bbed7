package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		err    error
	}{
		{"missing", "", "", httpx.ErrMissingAuthorization},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", httpx.ErrInvalidAuthorizationScheme},
		{"bearer", "Bearer abc.def", "abc.def", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"empty token", "Bearer", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := httpx.BearerToken(req)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSetBearerChallenge(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.SetBearerChallenge(rec, "", "")
	require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = httptest.NewRecorder()
	httpx.SetBearerChallenge(rec, "invalid_token", "token expired")
	require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), `Bearer error="invalid_token"`))
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error_description="token expired"`)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}

func TestPrincipalContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := httpx.PrincipalFromContext(req.Context())
	require.False(t, ok)

	ctx := httpx.WithPrincipal(req.Context(), httpx.Principal{ClientID: "abc", Scopes: []string{"client:read"}})
	p, ok := httpx.PrincipalFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "abc", p.ClientID)
}
