package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
)

// UsersHandler handles user management and login.
type UsersHandler struct {
	UserService *service.UserService
}

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// HandleCreate handles POST /oauth/user
//
//	@Summary		Create User
//	@Description	Creates a user. Permissions default to privacy-request:read.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with user:create scope"
//	@Param			request			body		authsdk.UserCreateRequest	true	"User to create"
//	@Success		201				{object}	authsdk.UserCreateResponse	"id"
//	@Failure		400				{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		422				{object}	authsdk.ErrorResponse		"error, error_description, invalid_scopes, valid_scopes"
//	@Router			/oauth/user [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UserCreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), service.UserCreate{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Scopes:    req.Scopes,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.UserCreateResponse{ID: user.ID})
}

// HandleList handles GET /oauth/user
//
//	@Summary		List Users
//	@Description	Lists users ordered by username, optionally filtered by a case-insensitive username substring.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string	true	"Bearer token with user:read scope"
//	@Param			username		query		string	false	"Username substring"
//	@Success		200				{object}	authsdk.UserListResponse	"items, total"
//	@Failure		401				{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/oauth/user [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		writeServiceError(w, r, err, "failed to list users")
		return
	}

	resp := authsdk.UserListResponse{
		Items: make([]authsdk.UserResponse, 0, len(users)),
		Total: len(users),
	}
	for _, u := range users {
		resp.Items = append(resp.Items, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /oauth/user/{user_id}
//
//	@Summary		Get User
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string	true	"Bearer token with user:read scope"
//	@Param			user_id			path		string	true	"User ID"
//	@Success		200				{object}	authsdk.UserResponse	"user"
//	@Failure		404				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/oauth/user/{user_id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUser(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to get user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleDelete handles DELETE /oauth/user/{user_id}
//
//	@Summary		Delete User
//	@Description	Deletes a user and their login client. Only the root client or the user's own login client may call this.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with user:delete scope"
//	@Param			user_id			path	string	true	"User ID"
//	@Success		204				"User deleted"
//	@Failure		403				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/oauth/user/{user_id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	caller := domain.Client{ID: p.ClientID}
	if p.UserID != "" {
		caller.UserID = &p.UserID
	}

	if err := h.UserService.DeleteUser(r.Context(), caller, r.PathValue("user_id")); err != nil {
		writeServiceError(w, r, err, "failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetPermissions handles GET /oauth/user/{user_id}/permission
//
//	@Summary		Get User Permissions
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string	true	"Bearer token with user-permission:read scope"
//	@Param			user_id			path		string	true	"User ID"
//	@Success		200				{object}	authsdk.UserPermissionsResponse	"user_id, scopes"
//	@Failure		404				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/oauth/user/{user_id}/permission [get].
func (h *UsersHandler) HandleGetPermissions(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	scopes, err := h.UserService.GetPermissions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to read permissions")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.UserPermissionsResponse{
		UserID: userID,
		Scopes: scopeList(scopes),
	})
}

// HandleUpdatePermissions handles PUT /oauth/user/{user_id}/permission
//
//	@Summary		Update User Permissions
//	@Description	Replaces a user's permissions. The user's login client is updated in the same transaction.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string		true	"Bearer token with user-permission:update scope"
//	@Param			user_id			path		string		true	"User ID"
//	@Param			scopes			body		[]string	true	"New permissions"
//	@Success		200				{object}	authsdk.UserPermissionsResponse	"user_id, scopes"
//	@Failure		404				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		422				{object}	authsdk.ErrorResponse			"error, error_description, invalid_scopes, valid_scopes"
//	@Router			/oauth/user/{user_id}/permission [put].
func (h *UsersHandler) HandleUpdatePermissions(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	var requested []string
	if err := httpx.DecodeJSON(r, &requested); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	scopes, err := h.UserService.UpdatePermissions(r.Context(), userID, requested)
	if err != nil {
		writeServiceError(w, r, err, "failed to update permissions")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.UserPermissionsResponse{
		UserID: userID,
		Scopes: scopeList(scopes),
	})
}

// HandleLogin handles POST /oauth/login
//
//	@Summary		User Login
//	@Description	Checks a username and password and returns the user with a token for their login client. Any bad username or password gives the same 403.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UserLoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.UserLoginResponse	"user_data, token_data"
//	@Failure		403		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/oauth/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UserLoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	user, token, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserLoginResponse{
		UserData:  toUserResponse(user),
		TokenData: authsdk.TokenResponse{AccessToken: token},
	})
}
