package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestGenKey(t *testing.T) {
	out, err := run(t, "gen-key")
	require.NoError(t, err)

	key := strings.TrimSpace(out)
	require.Len(t, key, jwe.KeySize)
	_, err = jwe.NewCodec([]byte(key))
	require.NoError(t, err)
}

func TestHashSecret(t *testing.T) {
	out, err := run(t, "hash-secret", "s3cret")
	require.NoError(t, err)

	vals := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok, line)
		vals[k] = strings.Trim(v, "'")
	}

	salt := vals["OAUTH_ROOT_CLIENT_SECRET_SALT"]
	require.True(t, strings.HasPrefix(salt, "$2b$12$"))
	require.Equal(t, cryptox.HashWithSalt([]byte("s3cret"), []byte(salt)), vals["OAUTH_ROOT_CLIENT_SECRET_HASH"])
}

func TestCommandsNeedToken(t *testing.T) {
	t.Setenv(envToken, "")

	_, err := run(t, "scopes", "--url", "http://127.0.0.1:1")
	require.ErrorIs(t, err, errNoToken)
}

func TestScopesAndToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("client_secret") != "secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"invalid client credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("GET /oauth/scope", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]string{"client:read", "scope:read"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	out, err := run(t, "token", "--url", srv.URL, "--client-id", "c", "--client-secret", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok", strings.TrimSpace(out))

	_, err = run(t, "token", "--url", srv.URL, "--client-id", "c", "--client-secret", "wrong")
	require.ErrorContains(t, err, "invalid_client")

	out, err = run(t, "scopes", "--url", srv.URL, "--token", "tok")
	require.NoError(t, err)
	require.Equal(t, "client:read\nscope:read", strings.TrimSpace(out))
}
