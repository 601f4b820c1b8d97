package modelscope

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chatbox-mcp-sync/internal/logger"
)

// DefaultAPIURL is the ModelScope endpoint listing operational MCP services.
const DefaultAPIURL = "https://www.modelscope.cn/api/v1/mcp/services/operational"

// ErrUnexpectedStatus indicates the API answered with a non-2xx status,
// typically 401/403 for a bad token.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Client performs the single authenticated call against the ModelScope API.
type Client struct {
	apiURL string
	token  string
	http   *http.Client
}

// NewClient returns a client for the given endpoint and bearer token.
// An empty apiURL selects the official endpoint. The HTTP client carries
// a 30 second timeout; there is no retry, one sync makes one call.
func NewClient(apiURL, token string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		token:  token,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchServices retrieves the current MCP service descriptors.
// Network failures, auth failures, and undecodable payloads all fail the
// whole run; there is no partial result.
func (c *Client) FetchServices() ([]Service, error) {
	logger.Debug("[DEBUG] Fetching MCP services from %s\n", c.apiURL)

	req, err := http.NewRequest(http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build API request for %s: %w", c.apiURL, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API call to %s failed: %w", c.apiURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close API response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ModelScope API returned %s: %w", resp.Status, ErrUnexpectedStatus)
	}

	var payload servicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode ModelScope API response: %w", err)
	}

	logger.Debug("[DEBUG] API returned %d service descriptors\n", len(payload.Data.Result))
	return payload.Data.Result, nil
}
