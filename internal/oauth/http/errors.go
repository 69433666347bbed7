package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
)

// writeServiceError maps service errors onto their wire form. Anything not
// recognised is logged and reported as a server error without its cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var invalid *scope.InvalidScopeError

	switch {
	case errors.As(err, &invalid):
		authsdk.NewInvalidScopeError(invalid.Invalid, invalid.Valid).WriteError(w)
	case errors.Is(err, service.ErrClientNotFound):
		authsdk.ErrClientNotFound.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		authsdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrRootClientProtected):
		authsdk.ErrRootClientProtected.WriteError(w)
	case errors.Is(err, service.ErrClientConflict):
		authsdk.ErrClientConflict.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		authsdk.ErrUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrInvalidPassword):
		authsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrIncorrectCredentials.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		authsdk.ErrAccessDenied.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error(msg, slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
	}
}
