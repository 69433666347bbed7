package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	oauthhttp "github.com/aussiebroadwan/oauthlib/internal/oauth/http"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/metrics"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store/drivers/sqlite"
	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	rootID     = "root-client"
	rootSecret = "root-secret"
	rootSalt   = "$2b$12$abcdefghijklmnopqrstuv"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

// testClock is shared between the test and the server goroutines.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testServer struct {
	URL   string
	sdk   *authsdk.SDKClient
	clock *testClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwe.NewCodec(testKey)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	clock := &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	dir := &service.ClientDirectory{
		Store: st,
		Root: service.RootClientConfig{
			ID:           rootID,
			HashedSecret: cryptox.HashWithSalt([]byte(rootSecret), []byte(rootSalt)),
			Salt:         rootSalt,
			Scopes:       scope.Default().All(),
		},
		Metrics: rec,
	}
	tokens := &service.TokenService{
		Codec:     codec,
		Directory: dir,
		Lifetime:  time.Hour,
		Now:       clock.Now,
		Metrics:   rec,
	}

	generous := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	limits := httpx.RateLimitProfiles{Strict: generous, Moderate: generous, Lenient: generous, Public: generous}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := oauthhttp.NewRouter("test", st, codec, limits, reg, logger)
	router.TokenService = tokens
	router.ClientService = &service.ClientService{Directory: dir, Registry: scope.Default()}
	router.UserService = &service.UserService{
		Store:     st,
		Directory: dir,
		Tokens:    tokens,
		Registry:  scope.Default(),
		Hasher:    cryptox.PasswordHasher{Pepper: "test-pepper"},
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:   srv.URL,
		sdk:   authsdk.NewSDKClient(srv.URL),
		clock: clock,
	}
}

func (s *testServer) rootSession(t *testing.T) *authsdk.Session {
	t.Helper()

	sess, err := s.sdk.AuthenticateWithClientCredentials(context.Background(), rootID, rootSecret)
	require.NoError(t, err)
	return sess
}

// newClient creates a client with scopes and returns a session for it.
func (s *testServer) newClient(t *testing.T, scopes ...string) (*authsdk.CreateClientResponse, *authsdk.Session) {
	t.Helper()

	ctx := context.Background()
	created, err := s.rootSession(t).CreateClient(ctx, scopes)
	require.NoError(t, err)

	sess, err := s.sdk.AuthenticateWithClientCredentials(ctx, created.ClientID, created.ClientSecret)
	require.NoError(t, err)
	return created, sess
}
