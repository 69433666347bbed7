package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
)

// RequireScopes verifies the bearer token for the required scopes and stores
// the resolved client as the request principal.
func RequireScopes(tokens *service.TokenService, required ...scope.Scope) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			bearer, err := httpx.BearerToken(r)
			if err != nil {
				// No usable credentials, send the bare challenge
				httpx.SetBearerChallenge(w, "", "")
				authsdk.ErrInvalidToken.WithDescription(err.Error()).WriteError(w)
				return
			}

			client, err := tokens.VerifyOAuthClient(ctx, bearer, required...)
			switch {
			case err == nil:
			case errors.Is(err, service.ErrAuthenticationFailed):
				httpx.SetBearerChallenge(w, authsdk.ErrorCodeInvalidToken, "")
				authsdk.ErrInvalidToken.WriteError(w)
				return
			case errors.Is(err, service.ErrTokenExpired):
				httpx.SetBearerChallenge(w, authsdk.ErrorCodeInvalidToken, "the access token expired")
				authsdk.ErrTokenExpired.WriteError(w)
				return
			case errors.Is(err, service.ErrAuthorizationFailed):
				httpx.SetBearerChallenge(w, authsdk.ErrorCodeInsufficientScope, "")
				authsdk.ErrInsufficientScope.WriteError(w)
				return
			default:
				log.Error("token verification error", slog.Any("error", err))
				authsdk.ErrServerError.WriteError(w)
				return
			}

			p := httpx.Principal{
				ClientID: client.ID,
				Scopes:   scope.Strings(client.Scopes),
			}
			if client.UserID != nil {
				p.UserID = *client.UserID
			}

			ctx = httpx.WithPrincipal(ctx, p)
			ctx = slogx.WithAttrs(ctx, slog.String("client_id", client.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
