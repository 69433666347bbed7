package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Client operations

// CreateClient creates a new OAuth client holding scopes. The returned
// secret is not retrievable later.
// Requires: client:create scope
func (s *Session) CreateClient(ctx context.Context, scopes []string) (*CreateClientResponse, error) {
	if scopes == nil {
		scopes = []string{}
	}

	resp, err := s.doJSON(ctx, http.MethodPost, "/oauth/client", scopes, "client:create")
	if err != nil {
		return nil, err
	}

	var createResp CreateClientResponse
	if err := decodeJSON(resp, &createResp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &createResp, nil
}

// DeleteClient deletes an OAuth client. Deleting a missing client succeeds.
// Requires: client:delete scope
func (s *Session) DeleteClient(ctx context.Context, clientID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/oauth/client/"+url.PathEscape(clientID), nil, nil, "client:delete")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// GetClientScopes returns the scopes a client currently holds.
// Requires: client:read scope
func (s *Session) GetClientScopes(ctx context.Context, clientID string) ([]string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/oauth/client/"+url.PathEscape(clientID)+"/scope", nil, nil, "client:read")
	if err != nil {
		return nil, err
	}

	var scopes []string
	if err := decodeJSON(resp, &scopes, http.StatusOK); err != nil {
		return nil, err
	}
	return scopes, nil
}

// SetClientScopes overwrites a client's scopes.
// Requires: client:update scope
func (s *Session) SetClientScopes(ctx context.Context, clientID string, scopes []string) ([]string, error) {
	if scopes == nil {
		scopes = []string{}
	}

	resp, err := s.doJSON(ctx, http.MethodPut, "/oauth/client/"+url.PathEscape(clientID)+"/scope", scopes, "client:update")
	if err != nil {
		return nil, err
	}

	var updated []string
	if err := decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListScopes returns every scope the server knows, sorted.
// Requires: scope:read scope
func (s *Session) ListScopes(ctx context.Context) ([]string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/oauth/scope", nil, nil, "scope:read")
	if err != nil {
		return nil, err
	}

	var scopes []string
	if err := decodeJSON(resp, &scopes, http.StatusOK); err != nil {
		return nil, err
	}
	return scopes, nil
}
