package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the OAuth service. It performs unauthenticated
// calls and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes enables client-side scope checks on Sessions whose scopes
	// are known, failing fast instead of making a request that would be
	// rejected. Disable it to exercise server-side checks in tests.
	// Default: true
	CheckScopes bool
}

// NewSDKClient creates a new client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// AuthenticateWithClientCredentials exchanges client credentials for a token
// and returns a Session that re-authenticates when the token expires.
func (c *SDKClient) AuthenticateWithClientCredentials(ctx context.Context, clientID, clientSecret string) (*Session, error) {
	tokenResp, err := c.ClientCredentialsGrant(ctx, clientID, clientSecret)
	if err != nil {
		return nil, err
	}

	s := newSession(c, tokenResp.AccessToken, nil)
	s.clientID = clientID
	s.clientSecret = clientSecret
	return s, nil
}

// NewSessionFromToken wraps an existing access token. When scopes are given
// they enable client-side scope checks. Such sessions cannot re-authenticate.
func (c *SDKClient) NewSessionFromToken(accessToken string, scopes ...string) *Session {
	return newSession(c, accessToken, scopes)
}
