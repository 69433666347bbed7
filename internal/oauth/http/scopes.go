package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
)

// ScopesHandler serves GET /oauth/scope
type ScopesHandler struct {
	ClientService *service.ClientService
}

// ServeHTTP godoc
//
//	@Summary		List Scopes
//	@Description	Returns every scope the service knows, sorted.
//	@Tags			Scopes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string	true	"Bearer token with scope:read scope"
//	@Success		200				{array}		string	"Sorted scopes"
//	@Failure		401				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/oauth/scope [get].
func (h *ScopesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, scopeList(h.ClientService.ListScopes()))
}
