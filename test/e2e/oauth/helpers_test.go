package oauth_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for oauth service end-to-end tests.
 * The image is built once, every test gets a fresh container and database.
 */

const (
	testImageName = "oauthlib-test:latest"

	rootClientID     = "e2e-root"
	rootClientSecret = "e2e-root-secret"
	encryptionKey    = "e2e0123456789abcdef0123456789abc"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building OAuth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up OAuth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/oauth/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// baseEnv is the container environment shared by every test.
func baseEnv() map[string]string {
	return map[string]string{
		"ENV":                      "test",
		"LOG_LEVEL":                "info",
		"LOG_FORMAT":               "json",
		"OAUTH_DATABASE_DRIVER":    "sqlite",
		"OAUTH_DATABASE_FILE":      "/data/oauth.db",
		"OAUTH_PEPPER_FILE":        "/data/pepper",
		"OAUTH_APP_ENCRYPTION_KEY": encryptionKey,
		"OAUTH_ROOT_CLIENT_ID":     rootClientID,
		"OAUTH_ROOT_CLIENT_SECRET": rootClientSecret,
	}
}

// relaxedLimits lifts the strict and moderate profiles, tests make many
// rapid requests which would otherwise hit the production limits.
func relaxedLimits() map[string]string {
	return map[string]string{
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
}

// startContainer runs the service with env and returns its base URL.
// The container is terminated when the test ends.
func startContainer(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// setupService starts a container with relaxed rate limits.
func setupService(t *testing.T) *authsdk.SDKClient {
	t.Helper()

	env := baseEnv()
	maps.Copy(env, relaxedLimits())
	return authsdk.NewSDKClient(startContainer(t, env))
}

// setupServiceWithDefaultRateLimits starts a container with the production
// limits, only for tests that check rate limiting itself.
func setupServiceWithDefaultRateLimits(t *testing.T) *authsdk.SDKClient {
	t.Helper()
	return authsdk.NewSDKClient(startContainer(t, baseEnv()))
}

// rootSession authenticates as the configured root client.
func rootSession(t *testing.T, client *authsdk.SDKClient) *authsdk.Session {
	t.Helper()

	session, err := client.AuthenticateWithClientCredentials(t.Context(), rootClientID, rootClientSecret)
	require.NoError(t, err, "root client should authenticate")
	return session
}

// createClient creates a client through admin and returns its credentials.
func createClient(t *testing.T, admin *authsdk.Session, scopes ...string) (string, string) {
	t.Helper()

	created, err := admin.CreateClient(t.Context(), scopes)
	require.NoError(t, err)
	require.NotEmpty(t, created.ClientID)
	require.NotEmpty(t, created.ClientSecret)
	return created.ClientID, created.ClientSecret
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// statusOf returns the HTTP status carried by an SDK error, or 0.
func statusOf(err error) int {
	var oauthErr *authsdk.OAuth2Error
	if errors.As(err, &oauthErr) {
		return oauthErr.StatusCode
	}
	return 0
}
