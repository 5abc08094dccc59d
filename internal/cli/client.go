package cli

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for the API. Credentials travel in the JSON
// body envelope rather than a header, so every request body is merged
// with the envelope fields before sending.
type Client struct {
	baseURL    string
	userID     string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, userID, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		userID:  userID,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetCredentials updates the client's session credentials
func (c *Client) SetCredentials(userID, token string) {
	c.userID = userID
	c.token = token
}

// APIError represents a transport error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// DigestPassword pre-hashes a password the way the API expects it on the wire
func DigestPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Do performs an HTTP request. payload is merged with the envelope fields
// into a single JSON body; authed requests additionally carry the session.
func (c *Client) Do(method, path string, payload map[string]any, authed bool, result any) error {
	url := c.baseURL + path

	body := map[string]any{
		"timestamp": time.Now().Unix(),
	}
	if authed {
		if c.userID == "" || c.token == "" {
			return fmt.Errorf("not logged in (no saved session)")
		}
		body["user_id"] = c.userID
		body["authentication_key"] = c.token
	}
	for k, v := range payload {
		body[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Transport error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Domain faults arrive with a 200 status and an error field
	var fault struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(respBody, &fault); err == nil && fault.Error != "" {
		return fmt.Errorf("%s (%s)", fault.Detail, fault.Error)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(path string, payload map[string]any, authed bool, result any) error {
	return c.Do(http.MethodGet, path, payload, authed, result)
}

// Put performs a PUT request
func (c *Client) Put(path string, payload map[string]any, authed bool, result any) error {
	return c.Do(http.MethodPut, path, payload, authed, result)
}

// Post performs a POST request
func (c *Client) Post(path string, payload map[string]any, authed bool, result any) error {
	return c.Do(http.MethodPost, path, payload, authed, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(path string, payload map[string]any, authed bool, result any) error {
	return c.Do(http.MethodDelete, path, payload, authed, result)
}
