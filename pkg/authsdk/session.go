package authsdk

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Session represents an authenticated session.
//
// Sessions created with AuthenticateWithClientCredentials keep the client
// credentials and fetch a new token when the server reports token_expired.
// Sessions created from a bare token fail with ErrTokenExpired instead.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	clientID     string
	clientSecret string
	scopes       map[string]bool // nil when the granted scopes are unknown
}

// newSession creates a session around an access token.
func newSession(client *SDKClient, accessToken string, scopes []string) *Session {
	s := &Session{
		client:      client,
		accessToken: accessToken,
	}
	if len(scopes) > 0 {
		s.scopes = make(map[string]bool, len(scopes))
		for _, sc := range scopes {
			s.scopes[sc] = true
		}
	}
	return s
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ClientID returns the client id the session authenticated as, or "" for
// sessions built from a bare token.
func (s *Session) ClientID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientID
}

// Scopes returns a copy of the known granted scopes. It is nil when the
// scopes were never supplied.
func (s *Session) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.scopes == nil {
		return nil
	}
	scopes := make([]string, 0, len(s.scopes))
	for sc := range s.scopes {
		scopes = append(scopes, sc)
	}
	return scopes
}

// HasScope reports whether the session is known to hold scope.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

// SetScopes records the scopes the token grants, enabling client-side checks.
func (s *Session) SetScopes(scopes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scopes = make(map[string]bool, len(scopes))
	for _, sc := range scopes {
		s.scopes[sc] = true
	}
}

// checkScopes fails fast when scope checking is enabled, the session's
// scopes are known and one of required is missing.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.scopes == nil {
		return nil
	}

	var missing []string
	for _, sc := range required {
		if !s.scopes[sc] {
			missing = append(missing, sc)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required scope(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *Session) canReauthenticate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientID != "" && s.clientSecret != ""
}

// reauthenticate replaces stale with a fresh token. If another goroutine
// already replaced it the current token is returned without a request.
func (s *Session) reauthenticate(ctx context.Context, stale string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != stale {
		return s.accessToken, nil
	}

	tokenResp, err := s.client.ClientCredentialsGrant(ctx, s.clientID, s.clientSecret)
	if err != nil {
		return "", fmt.Errorf("failed to re-authenticate: %w", err)
	}

	s.accessToken = tokenResp.AccessToken
	return s.accessToken, nil
}
