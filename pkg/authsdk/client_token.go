package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ClientCredentialsGrant requests an access token with the client
// credentials sent as form fields.
func (c *SDKClient) ClientCredentialsGrant(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	}
	return c.requestToken(ctx, data, nil)
}

// ClientCredentialsGrantBasic requests an access token with the client
// credentials sent as HTTP Basic authentication.
func (c *SDKClient) ClientCredentialsGrantBasic(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	data := url.Values{"grant_type": {"client_credentials"}}
	return c.requestToken(ctx, data, func(r *http.Request) {
		r.SetBasicAuth(url.QueryEscape(clientID), url.QueryEscape(clientSecret))
	})
}

func (c *SDKClient) requestToken(ctx context.Context, data url.Values, decorate func(*http.Request)) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/oauth/token"), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if decorate != nil {
		decorate(req)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokenResp, nil
}
