package authsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the wire form of an error body. Client code should use
// OAuth2Error instead.
type ErrorResponse struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description"`
	InvalidScopes    []string `json:"invalid_scopes,omitempty"`
	ValidScopes      []string `json:"valid_scopes,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is returned from POST /oauth/token. The access token is an
// opaque encrypted string; its lifetime is a server setting.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ============================================================================
// Client Types
// ============================================================================

// CreateClientResponse is returned from POST /oauth/client. The secret is
// only ever shown here.
type CreateClientResponse struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ============================================================================
// User Types
// ============================================================================

// UserCreateRequest is the body of POST /oauth/user. Scopes defaults to
// privacy-request:read when empty.
type UserCreateRequest struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Scopes    []string `json:"scopes,omitempty"`
}

type UserCreateResponse struct {
	ID string `json:"id"`
}

// UserResponse is the public view of a user. Password hashes are never returned.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}

type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLoginResponse carries the logged in user and a token for their login client.
type UserLoginResponse struct {
	UserData  UserResponse  `json:"user_data"`
	TokenData TokenResponse `json:"token_data"`
}

type UserPermissionsResponse struct {
	UserID string   `json:"user_id"`
	Scopes []string `json:"scopes"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Codec    string `json:"codec"`
}
