package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/metrics"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
)

// DefaultTokenLifetime is eight days.
const DefaultTokenLifetime = 11520 * time.Minute

// ClientCredentials is a client id and plaintext secret pair as presented by a caller.
type ClientCredentials struct {
	ID     string
	Secret string
}

func (c *ClientCredentials) complete() bool {
	return c != nil && c.ID != "" && c.Secret != ""
}

// PickCredentials chooses which credentials to authenticate with. Form
// fields win over HTTP Basic when both are complete.
func PickCredentials(form, basic *ClientCredentials) (ClientCredentials, error) {
	switch {
	case form.complete():
		return *form, nil
	case basic.complete():
		return *basic, nil
	default:
		return ClientCredentials{}, fmt.Errorf("%w: no client credentials supplied", ErrAuthenticationFailed)
	}
}

// TokenService issues access tokens for authenticated clients and verifies
// bearer tokens against the live client record.
type TokenService struct {
	Codec     *jwe.Codec
	Directory *ClientDirectory
	Lifetime  time.Duration
	Now       func() time.Time
	Metrics   *metrics.Recorder
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AcquireAccessToken authenticates a client and returns a new access token.
// Every credential failure is reported as ErrAuthenticationFailed.
func (s *TokenService) AcquireAccessToken(ctx context.Context, form, basic *ClientCredentials) (string, error) {
	l := slogx.FromContext(ctx)

	// 1. Pick which credentials to use
	creds, err := PickCredentials(form, basic)
	if err != nil {
		s.Metrics.TokenIssued(metrics.ResultFailure)
		return "", err
	}

	// 2. Resolve the client
	res, err := s.Directory.Get(ctx, creds.ID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			l.Info("token request for unknown client", slog.String("client_id", creds.ID))
			s.Metrics.TokenIssued(metrics.ResultFailure)
			return "", ErrAuthenticationFailed
		}
		s.Metrics.TokenIssued(metrics.ResultError)
		return "", err
	}

	// 3. Check the secret
	if !s.Directory.CredentialsValid(res.Client, creds.Secret) {
		l.Info("token request with invalid client secret", slog.String("client_id", creds.ID))
		s.Metrics.TokenIssued(metrics.ResultFailure)
		return "", ErrAuthenticationFailed
	}

	// 4. Issue
	token, err := s.IssueToken(res.Client)
	if err != nil {
		s.Metrics.TokenIssued(metrics.ResultError)
		return "", err
	}

	l.Info("access token issued",
		slog.String("client_id", res.Client.ID),
		slog.String("origin", res.Origin.String()),
	)
	s.Metrics.TokenIssued(metrics.ResultSuccess)
	return token, nil
}

// IssueToken seals the client's id and current scopes with the issue time.
func (s *TokenService) IssueToken(client domain.Client) (string, error) {
	claims := domain.Claims{
		ClientID: client.ID,
		Scopes:   scope.Strings(client.Scopes),
		IssuedAt: domain.FormatIssuedAt(s.now()),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}

	token, err := s.Codec.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("encrypt token: %w", err)
	}
	return token, nil
}

// VerifyOAuthClient checks that bearer is a live token granting every scope in
// required, and returns the client it was issued to. The client is re-read so
// scope reductions and deletions take effect on existing tokens.
func (s *TokenService) VerifyOAuthClient(ctx context.Context, bearer string, required ...scope.Scope) (domain.Client, error) {
	client, result, err := s.verify(ctx, bearer, required)
	s.Metrics.TokenVerified(result)
	if err != nil {
		slogx.FromContext(ctx).Debug("token verification failed",
			slog.String("result", result),
			slog.Any("error", err),
		)
	}
	return client, err
}

func (s *TokenService) verify(ctx context.Context, bearer string, required []scope.Scope) (domain.Client, string, error) {
	// 1. A token must be present
	if bearer == "" {
		return domain.Client{}, metrics.ResultFailure, ErrAuthenticationFailed
	}

	// 2. Decrypt
	payload, err := s.Codec.Decrypt(bearer)
	if err != nil {
		return domain.Client{}, metrics.ResultFailure, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	// 3. Decode the claims and their issue time
	var claims domain.Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return domain.Client{}, metrics.ResultForbidden, fmt.Errorf("%w: malformed claims: %w", ErrAuthorizationFailed, err)
	}
	issuedAt, err := claims.IssuedTime()
	if err != nil {
		return domain.Client{}, metrics.ResultForbidden, fmt.Errorf("%w: %w", ErrAuthorizationFailed, err)
	}

	// 4. Expiry
	if s.now().Sub(issuedAt) > s.Lifetime {
		return domain.Client{}, metrics.ResultExpired, ErrTokenExpired
	}

	// 5. The token must carry every required scope
	granted := scope.FromStrings(claims.Scopes)
	if !scope.Subset(required, granted) {
		return domain.Client{}, metrics.ResultForbidden, fmt.Errorf("%w: token lacks required scopes", ErrAuthorizationFailed)
	}

	// 6. Resolve the client named in the token
	if claims.ClientID == "" {
		return domain.Client{}, metrics.ResultForbidden, fmt.Errorf("%w: token has no client id", ErrAuthorizationFailed)
	}
	res, err := s.Directory.Get(ctx, claims.ClientID)
	switch {
	case errors.Is(err, ErrClientNotFound):
		return domain.Client{}, metrics.ResultForbidden, fmt.Errorf("%w: %w", ErrAuthorizationFailed, err)
	case err != nil:
		return domain.Client{}, metrics.ResultError, err
	}

	// 7. The client must still hold everything the token claims
	if !res.Client.HasScopes(granted...) {
		return domain.Client{}, metrics.ResultForbidden, fmt.Errorf("%w: token scopes exceed client scopes", ErrAuthorizationFailed)
	}

	return res.Client, metrics.ResultSuccess, nil
}
