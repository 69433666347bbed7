package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
)

const grantClientCredentials = "client_credentials"

// TokenHandler serves POST /oauth/token
// Accepts application/x-www-form-urlencoded per the RFC 6749 framework.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth Token Endpoint
//	@Description	Exchanges client credentials for an access token. Credentials may be sent as form fields or with HTTP Basic authentication; form fields win when both are complete.
//	@Tags			OAuth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					false	"Grant type"	Enums(client_credentials)
//	@Param			client_id		formData	string					false	"Client identifier"
//	@Param			client_secret	formData	string					false	"Client secret"
//	@Success		200				{object}	authsdk.TokenResponse	"access_token"
//	@Failure		400				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Router			/oauth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Ensure the right content-type
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		authsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	// 2. Parse the form body
	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	// 3. Only client_credentials is supported, an absent grant_type implies it
	if gt := r.PostForm.Get("grant_type"); gt != "" && gt != grantClientCredentials {
		authsdk.ErrUnsupportedGrantType.WriteError(w)
		return
	}

	// 4. Collect credentials from both places
	form := &service.ClientCredentials{
		ID:     strings.TrimSpace(r.PostForm.Get("client_id")),
		Secret: r.PostForm.Get("client_secret"),
	}
	basic := basicCredentials(r)

	token, err := h.TokenService.AcquireAccessToken(ctx, form, basic)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			if basic != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="oauth"`)
			}
			authsdk.ErrInvalidClient.WriteError(w)
			return
		}
		log.Error("client_credentials grant failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{AccessToken: token})
}

// basicCredentials reads HTTP Basic credentials. Both parts are
// form-urlencoded per RFC 6749 section 2.3.1; values that fail to decode
// are used as sent.
func basicCredentials(r *http.Request) *service.ClientCredentials {
	id, secret, ok := r.BasicAuth()
	if !ok {
		return nil
	}
	if v, err := url.QueryUnescape(id); err == nil {
		id = v
	}
	if v, err := url.QueryUnescape(secret); err == nil {
		secret = v
	}
	return &service.ClientCredentials{ID: id, Secret: secret}
}
