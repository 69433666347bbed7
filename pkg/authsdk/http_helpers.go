package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an unauthenticated request.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body []byte,
	headers map[string]string,
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doAuthRequest performs a request with the session's bearer token. If the
// server reports the token expired and the session holds client credentials,
// it fetches a new token and retries once.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body []byte,
	headers map[string]string,
	requiredScopes ...string,
) (*http.Response, error) {
	if err := s.checkScopes(requiredScopes...); err != nil {
		return nil, err
	}

	token := s.AccessToken()
	resp, err := s.send(ctx, token, method, path, body, headers)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || !s.canReauthenticate() {
		return resp, nil
	}

	// Only an expired token is worth retrying
	bodyBytes, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if perr := parseErrorResponse(resp, bodyBytes); !errors.Is(perr, ErrTokenExpired) {
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		return resp, nil
	}

	fresh, err := s.reauthenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, fresh, method, path, body, headers)
}

func (s *Session) send(
	ctx context.Context,
	token, method, path string,
	body []byte,
	headers map[string]string,
) (*http.Response, error) {
	all := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		all[k] = v
	}
	all["Authorization"] = "Bearer " + token
	return s.client.doRequest(ctx, method, path, body, all)
}

// doJSON marshals in (when not nil) and performs an authenticated JSON request.
func (s *Session) doJSON(
	ctx context.Context,
	method, path string,
	in any,
	requiredScopes ...string,
) (*http.Response, error) {
	var (
		body    []byte
		headers map[string]string
	)
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		headers = map[string]string{"Content-Type": "application/json"}
	}
	return s.doAuthRequest(ctx, method, path, body, headers, requiredScopes...)
}

// decodeJSON decodes a JSON response into the target, or returns an
// *OAuth2Error when the status is not the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if perr := parseErrorResponse(resp, bodyBytes); perr != nil {
			return perr
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatusNoContent returns a typed error if the response status is not 204 No Content.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		if perr := parseErrorResponse(resp, bodyBytes); perr != nil {
			return perr
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}
