// Package sync implements the artist dashboard's client-side
// reconciliation core: artist-ID resolution with a self-healing ensure
// step, availability synchronization, calendar day-matchers with a
// far-future marker slot, range selection and the gage criteria
// workflow. All state is owned per Calendar/Availability instance; the
// backend remains the source of truth.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
)

// DefaultTimeout bounds every request the core issues. The legacy
// client had no timeout at all on these calls; one consistent policy
// replaces that.
const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx backend response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Body)
}

// IsUnlinkedArtist reports whether err is the recoverable
// unlinked-artist condition: 400/401/403 plus the sentinel substring in
// the body. Only this condition triggers the ensure-and-retry path.
func IsUnlinkedArtist(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return strings.Contains(apiErr.Body, appErrors.UnlinkedArtistMessage)
	}
	return false
}

// isNotLinkedStatus covers the resolver's GET /artists/me contract,
// where a bare 403/404 already means "no artist yet".
func isNotLinkedStatus(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusForbidden || apiErr.Status == http.StatusNotFound
}

// ClientConfig configures the sync client.
type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is a thin bearer-authenticated JSON transport shared by the
// resolver, availability, calendar and gage components.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient constructs a Client. An empty base URL disables the core:
// every call returns ErrNoBaseURL instead of reaching the network.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ErrNoBaseURL is returned when the API base URL is unconfigured.
var ErrNoBaseURL = fmt.Errorf("api base url not configured")

// Configured reports whether the client can reach a backend.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// do issues one request and returns the response body. Non-2xx
// statuses become *APIError carrying the raw body text for sentinel
// matching.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNoBaseURL
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// decode unwraps either a bare JSON value or the server's {data: ...}
// envelope into dest.
func decode(raw []byte, dest interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, dest)
	}
	return json.Unmarshal(raw, dest)
}

// withEnsureRetry runs op once; on the unlinked-artist condition it
// issues the ensure call and retries op exactly once. Every other
// failure passes through untouched. This is the single shared
// remediation path for all operations.
func (c *Client) withEnsureRetry(ctx context.Context, op func(context.Context) ([]byte, error)) ([]byte, error) {
	raw, err := op(ctx)
	if err == nil || !IsUnlinkedArtist(err) {
		return raw, err
	}

	c.logger.Info("unlinked artist detected, running ensure")
	if _, ensureErr := c.do(ctx, http.MethodPost, "/api/artists/me/ensure", nil); ensureErr != nil {
		return nil, fmt.Errorf("ensure artist: %w", ensureErr)
	}
	return op(ctx)
}
