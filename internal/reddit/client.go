// Package reddit implements the subreddit client used by the cross-post
// workflows and the Notification Relay. It speaks the reddit OAuth2 API
// directly (script-app password grant) over net/http.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://oauth.reddit.com"
	defaultAuthURL = "https://www.reddit.com"

	// Refresh the token slightly before reddit expires it.
	tokenExpiryMargin = time.Minute
)

// ErrSubmissionNotFound indicates the id did not resolve to a submission.
var ErrSubmissionNotFound = errors.New("submission not found")

// APIError represents an error response from the reddit API.
type APIError struct {
	StatusCode int
	Field      string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("reddit API error: %s (field: %s)", e.Message, e.Field)
	}
	return fmt.Sprintf("reddit API error with status %d", e.StatusCode)
}

// Credentials holds the script-app login data.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// Client is an authenticated reddit API client. It is safe for
// concurrent use; token refresh is serialized internally.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	creds      Credentials

	baseURL string
	authURL string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// Option customizes the client, mainly for tests.
type Option func(*Client)

// WithBaseURLs overrides the API and auth endpoints.
func WithBaseURLs(baseURL, authURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
		c.authURL = strings.TrimRight(authURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a reddit client. The request timeout bounds every
// remote call including the initial token fetch.
func NewClient(creds Credentials, timeout time.Duration, logger *slog.Logger, opts ...Option) (*Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("reddit client credentials are required")
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("reddit account credentials are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "reddit_client"),
		creds:      creds,
		baseURL:    defaultBaseURL,
		authURL:    defaultAuthURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ensureToken fetches or refreshes the OAuth2 token when missing or
// close to expiry.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "token request rejected"}
	}

	var tokenResp struct {
		AccessToken string  `json:"access_token"`
		ExpiresIn   float64 `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}

	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	c.logger.DebugContext(ctx, "Obtained reddit access token", "expires_in", tokenResp.ExpiresIn)

	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// doRequest handles one authenticated request/response cycle. GET
// parameters go in the query string, everything else is form-encoded.
// An expired token is refreshed and the request retried once.
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, response interface{}) error {
	for attempt := 0; ; attempt++ {
		err := c.doRequestOnce(ctx, method, path, params, response)

		var apiErr *APIError
		if attempt == 0 && errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			c.invalidateToken()
			continue
		}
		return err
	}
}

func (c *Client) doRequestOnce(ctx context.Context, method, path string, params url.Values, response interface{}) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	var body io.Reader
	if method == http.MethodGet {
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.creds.UserAgent)
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode}
	}

	if response == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkJSONErrors surfaces the api_type=json error list as an APIError.
func checkJSONErrors(resp *jsonResponse) error {
	if len(resp.JSON.Errors) == 0 {
		return nil
	}
	first := resp.JSON.Errors[0]
	apiErr := &APIError{}
	if len(first) > 0 {
		apiErr.Message = first[0]
	}
	if len(first) > 1 {
		apiErr.Message = first[1]
	}
	if len(first) > 2 {
		apiErr.Field = first[2]
	}
	return apiErr
}
