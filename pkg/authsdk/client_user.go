package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Login signs a user in with a username and password. The returned Session
// carries the token of the user's login client; it cannot re-authenticate
// on its own.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, *UserLoginResponse, error) {
	body, err := json.Marshal(UserLoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/oauth/login", body, map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, nil, err
	}

	var login UserLoginResponse
	if err := decodeJSON(resp, &login, http.StatusOK); err != nil {
		return nil, nil, err
	}

	return newSession(c, login.TokenData.AccessToken, nil), &login, nil
}
