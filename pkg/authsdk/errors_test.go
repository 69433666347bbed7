package authsdk

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOAuth2Error_Is(t *testing.T) {
	t.Parallel()

	described := ErrTokenExpired.WithDescription("stale")
	require.ErrorIs(t, described, ErrTokenExpired)
	require.NotErrorIs(t, described, ErrInvalidToken)

	// Same code, different status
	require.NotErrorIs(t, ErrRootClientProtected, ErrInsufficientScope)
	require.ErrorIs(t, ErrRootClientProtected, ErrAccessDenied)
}

func TestOAuth2Error_WriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewInvalidScopeError([]string{"bogus"}, []string{"a:b", "c:d"}).WriteError(rec)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "invalid_scope", body["error"])
	require.Equal(t, []any{"bogus"}, body["invalid_scopes"])
	require.Equal(t, []any{"a:b", "c:d"}, body["valid_scopes"])
}

func TestOAuth2Error_WriteErrorOmitsScopeLists(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrClientNotFound.WriteError(rec)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotContains(t, rec.Body.String(), "invalid_scopes")
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantNil  bool
		wantCode string
		wantIs   error
	}{
		{name: "success", status: http.StatusOK, body: `{}`, wantNil: true},
		{
			name:     "expired",
			status:   http.StatusUnauthorized,
			body:     `{"error":"token_expired","error_description":"old"}`,
			wantCode: ErrorCodeTokenExpired,
			wantIs:   ErrTokenExpired,
		},
		{
			name:     "not json",
			status:   http.StatusBadGateway,
			body:     `<html>`,
			wantCode: ErrorCodeServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Body: io.NopCloser(strings.NewReader(tt.body))}
			err := parseErrorResponse(resp, []byte(tt.body))
			if tt.wantNil {
				require.NoError(t, err)
				return
			}

			var oerr *OAuth2Error
			require.True(t, errors.As(err, &oerr))
			require.Equal(t, tt.wantCode, oerr.Code)
			require.Equal(t, tt.status, oerr.StatusCode)
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}
