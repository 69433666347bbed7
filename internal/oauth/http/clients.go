package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
)

// ClientsHandler handles all client management endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate handles POST /oauth/client
//
//	@Summary		Create OAuth Client
//	@Description	Creates a client holding the given scopes and returns its id and secret. The secret is never shown again.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with client:create scope"
//	@Param			scopes			body		[]string						true	"Scopes to grant"
//	@Success		201				{object}	authsdk.CreateClientResponse	"client_id and client_secret"
//	@Failure		400				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		401				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		409				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		422				{object}	authsdk.ErrorResponse			"error, error_description, invalid_scopes, valid_scopes"
//	@Failure		500				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/oauth/client [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var requested []string
	if err := httpx.DecodeJSON(r, &requested); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	client, secret, err := h.ClientService.CreateClient(r.Context(), requested)
	if err != nil {
		writeServiceError(w, r, err, "failed to create client")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.CreateClientResponse{
		ClientID:     client.ID,
		ClientSecret: secret,
	})
}

// HandleDelete handles DELETE /oauth/client/{client_id}
//
//	@Summary		Delete OAuth Client
//	@Description	Deletes a client. Deleting a client that does not exist succeeds. The root client cannot be deleted.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with client:delete scope"
//	@Param			client_id		path	string	true	"Client ID"
//	@Success		204				"Client deleted or already absent"
//	@Failure		401				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/oauth/client/{client_id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ClientService.DeleteClient(r.Context(), r.PathValue("client_id")); err != nil {
		writeServiceError(w, r, err, "failed to delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetScopes handles GET /oauth/client/{client_id}/scope
//
//	@Summary		Get Client Scopes
//	@Description	Returns the scopes a client currently holds.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string	true	"Bearer token with client:read scope"
//	@Param			client_id		path		string	true	"Client ID"
//	@Success		200				{array}		string	"Scopes"
//	@Failure		401				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/oauth/client/{client_id}/scope [get].
func (h *ClientsHandler) HandleGetScopes(w http.ResponseWriter, r *http.Request) {
	scopes, err := h.ClientService.GetClientScopes(r.Context(), r.PathValue("client_id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to read client scopes")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, scopeList(scopes))
}

// HandleSetScopes handles PUT /oauth/client/{client_id}/scope
//
//	@Summary		Set Client Scopes
//	@Description	Overwrites a client's scopes. Tokens issued earlier stop verifying if they claim a removed scope.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string		true	"Bearer token with client:update scope"
//	@Param			client_id		path		string		true	"Client ID"
//	@Param			scopes			body		[]string	true	"New scopes"
//	@Success		200				{array}		string		"Scopes now held"
//	@Failure		400				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		422				{object}	authsdk.ErrorResponse	"error, error_description, invalid_scopes, valid_scopes"
//	@Router			/oauth/client/{client_id}/scope [put].
func (h *ClientsHandler) HandleSetScopes(w http.ResponseWriter, r *http.Request) {
	var requested []string
	if err := httpx.DecodeJSON(r, &requested); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	client, err := h.ClientService.SetClientScopes(r.Context(), r.PathValue("client_id"), requested)
	if err != nil {
		writeServiceError(w, r, err, "failed to update client scopes")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, scopeList(client.Scopes))
}

// scopeList never returns nil so empty lists encode as [].
func scopeList(scopes []scope.Scope) []string {
	out := scope.Strings(scopes)
	if out == nil {
		out = []string{}
	}
	return out
}
