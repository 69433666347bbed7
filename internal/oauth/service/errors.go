package service

import "errors"

var (
	// ErrAuthenticationFailed covers missing, unknown or wrong credentials and
	// undecryptable tokens. Callers must not learn which one it was.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAuthorizationFailed means the token decrypted but does not grant access.
	ErrAuthorizationFailed = errors.New("not authorized")

	ErrTokenExpired = errors.New("token expired")

	ErrClientNotFound      = errors.New("client not found")
	ErrClientWriteFailed   = errors.New("client write failed")
	ErrClientConflict      = errors.New("client id already exists")
	ErrRootClientProtected = errors.New("root client cannot be modified")

	// ErrConfiguration marks settings that make the service unusable, such as
	// a root client id with no secret hash.
	ErrConfiguration = errors.New("invalid configuration")

	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidUsername    = errors.New("username must be non-empty and contain no spaces")
	ErrInvalidPassword    = errors.New("password is required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")
)
