package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// User operations

// CreateUser creates a user and returns its id.
// Requires: user:create scope
func (s *Session) CreateUser(ctx context.Context, req UserCreateRequest) (*UserCreateResponse, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, "/oauth/user", req, "user:create")
	if err != nil {
		return nil, err
	}

	var created UserCreateResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListUsers lists users, optionally keeping those whose username contains filter.
// Requires: user:read scope
func (s *Session) ListUsers(ctx context.Context, filter string) (*UserListResponse, error) {
	path := "/oauth/user"
	if filter != "" {
		path += "?" + url.Values{"username": {filter}}.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil, "user:read")
	if err != nil {
		return nil, err
	}

	var list UserListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetUser fetches a single user.
// Requires: user:read scope
func (s *Session) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/oauth/user/"+url.PathEscape(userID), nil, nil, "user:read")
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user along with their login client. Only the root
// client or the user's own login client may do this.
// Requires: user:delete scope
func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/oauth/user/"+url.PathEscape(userID), nil, nil, "user:delete")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// GetUserPermissions returns the scopes granted to a user.
// Requires: user-permission:read scope
func (s *Session) GetUserPermissions(ctx context.Context, userID string) (*UserPermissionsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/oauth/user/"+url.PathEscape(userID)+"/permission", nil, nil, "user-permission:read")
	if err != nil {
		return nil, err
	}

	var perms UserPermissionsResponse
	if err := decodeJSON(resp, &perms, http.StatusOK); err != nil {
		return nil, err
	}
	return &perms, nil
}

// UpdateUserPermissions replaces a user's scopes. The body is a JSON array.
// Requires: user-permission:update scope
func (s *Session) UpdateUserPermissions(ctx context.Context, userID string, scopes []string) (*UserPermissionsResponse, error) {
	if scopes == nil {
		scopes = []string{}
	}

	resp, err := s.doJSON(ctx, http.MethodPut, "/oauth/user/"+url.PathEscape(userID)+"/permission", scopes, "user-permission:update")
	if err != nil {
		return nil, err
	}

	var perms UserPermissionsResponse
	if err := decodeJSON(resp, &perms, http.StatusOK); err != nil {
		return nil, err
	}
	return &perms, nil
}
