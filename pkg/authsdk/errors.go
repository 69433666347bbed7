package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	// OAuth2 error codes per RFC 6749 and RFC 6750
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidClient        = "invalid_client"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
	ErrorCodeInvalidScope         = "invalid_scope"
	ErrorCodeServerError          = "server_error"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeInsufficientScope    = "insufficient_scope"
	ErrorCodeAccessDenied         = "access_denied"

	// Service specific codes
	ErrorCodeTokenExpired = "token_expired"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeConflict     = "conflict"
)

// ============================================================================
// OAuth2Error
// ============================================================================

// OAuth2Error is the error body returned by every endpoint. It is used by the
// server to write responses and by the SDK to report them.
type OAuth2Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g. "invalid_client")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// InvalidScopes and ValidScopes are only set for invalid_scope errors.
	InvalidScopes []string `json:"invalid_scopes,omitempty"`
	ValidScopes   []string `json:"valid_scopes,omitempty"`
}

// Error implements the error interface.
func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *OAuth2Error with the same status and code, so callers
// can write errors.Is(err, authsdk.ErrTokenExpired).
func (e *OAuth2Error) Is(target error) bool {
	t, ok := target.(*OAuth2Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// WriteError writes this error as a JSON response.
func (e *OAuth2Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// WithDescription returns a copy of e with a different description.
func (e *OAuth2Error) WithDescription(description string) *OAuth2Error {
	c := *e
	c.Description = description
	return &c
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	ErrInvalidRequest = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidClient is returned when client authentication failed.
	ErrInvalidClient = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidClient,
		Description: "invalid client credentials",
	}

	ErrUnsupportedGrantType = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeUnsupportedGrantType,
		Description: "grant type not supported",
	}

	ErrServerError = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrInvalidContentType is returned when the token endpoint receives
	// anything other than application/x-www-form-urlencoded.
	ErrInvalidContentType = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "content-type must be application/x-www-form-urlencoded",
	}

	ErrInvalidFormBody = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	ErrInvalidJSONBody = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid JSON body",
	}

	// ErrInvalidToken is returned when the access token is missing or cannot be read.
	ErrInvalidToken = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing or invalid",
	}

	// ErrTokenExpired is returned when the access token is older than its lifetime.
	ErrTokenExpired = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeTokenExpired,
		Description: "the access token has expired",
	}

	// ErrInsufficientScope is returned when the token or its client lacks a required scope.
	ErrInsufficientScope = &OAuth2Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientScope,
		Description: "not authorized for this action",
	}

	ErrAccessDenied = &OAuth2Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	// ErrRootClientProtected is returned for writes against the root client.
	ErrRootClientProtected = &OAuth2Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "the root client cannot be modified",
	}

	// ErrIncorrectCredentials is returned by login for any bad username or password.
	ErrIncorrectCredentials = &OAuth2Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "incorrect username or password",
	}

	ErrClientNotFound = &OAuth2Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "no client found with that id",
	}

	ErrUserNotFound = &OAuth2Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "no user found with that id",
	}

	// ErrClientConflict is returned when a generated client id already exists. Retry.
	ErrClientConflict = &OAuth2Error{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "client id collision, retry the request",
	}

	ErrUsernameTaken = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "username already exists",
	}

	// ErrInvalidScope is returned when a request names scopes that do not
	// exist. Use NewInvalidScopeError to include the offending scopes.
	ErrInvalidScope = &OAuth2Error{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeInvalidScope,
		Description: "invalid scope provided",
	}
)

// NewOAuth2Error creates a new OAuth2Error with the given status code, error code, and description.
func NewOAuth2Error(statusCode int, code, description string) *OAuth2Error {
	return &OAuth2Error{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// NewInvalidScopeError builds an invalid_scope error listing the rejected
// scopes alongside every valid one.
func NewInvalidScopeError(invalid, valid []string) *OAuth2Error {
	e := *ErrInvalidScope
	e.InvalidScopes = slices.Clone(invalid)
	e.ValidScopes = slices.Clone(valid)
	return &e
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *OAuth2Error.
// Returns nil if the response indicates success.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &OAuth2Error{
			StatusCode:    resp.StatusCode,
			Code:          errResp.Error,
			Description:   errResp.ErrorDescription,
			InvalidScopes: errResp.InvalidScopes,
			ValidScopes:   errResp.ValidScopes,
		}
	}

	// Fallback: create generic error from status code
	return &OAuth2Error{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
