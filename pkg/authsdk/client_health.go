package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
)

// ErrNotReady is returned by GetReadiness when the server answers 503. The
// report is still returned so callers can see which check failed.
var ErrNotReady = errors.New("authsdk: oauth server not ready")

// GetLiveness reports whether the oauth server process is up. It does not
// touch the database or the token codec.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	report, _, err := c.health(ctx, "/livez", http.StatusOK)
	return report, err
}

// GetReadiness reports whether the oauth server can verify tokens: its client
// store answers and its token codec round trips.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	report, status, err := c.health(ctx, "/readyz", http.StatusOK, http.StatusServiceUnavailable)
	if err != nil {
		return nil, err
	}
	if status == http.StatusServiceUnavailable {
		return report, fmt.Errorf("%w: %s", ErrNotReady, report.Status)
	}
	return report, nil
}

// health fetches a health report. Any status outside reportStatuses is turned
// into an *OAuth2Error.
func (c *SDKClient) health(ctx context.Context, path string, reportStatuses ...int) (*HealthResponse, int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	if !slices.Contains(reportStatuses, resp.StatusCode) {
		if perr := parseErrorResponse(resp, body); perr != nil {
			return nil, 0, perr
		}
		return nil, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var report HealthResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, 0, fmt.Errorf("failed to decode health report: %w", err)
	}
	return &report, resp.StatusCode, nil
}
