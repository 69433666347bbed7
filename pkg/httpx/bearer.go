package httpx

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrMissingAuthorization means the request had no Authorization header.
	ErrMissingAuthorization = errors.New("missing authorization header")

	// ErrInvalidAuthorizationScheme means the header used something other than Bearer.
	ErrInvalidAuthorizationScheme = errors.New("authorization scheme must be Bearer")
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return "", ErrMissingAuthorization
	}

	scheme, token, _ := strings.Cut(authz, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationScheme
	}
	return strings.TrimSpace(token), nil
}

// SetBearerChallenge sets an RFC 6750 WWW-Authenticate challenge. An empty
// code produces the bare "Bearer" challenge used when no credentials were sent.
func SetBearerChallenge(w http.ResponseWriter, code, description string) {
	if code == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		return
	}
	v := `Bearer error="` + code + `"`
	if description != "" {
		v += `, error_description="` + description + `"`
	}
	w.Header().Set("WWW-Authenticate", v)
}
