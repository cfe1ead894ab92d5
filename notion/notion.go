// Package notion implements mapsync.TableService on top of a Notion
// database, using the public REST API (version 2022-06-28).
package notion

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

	"github.com/fwojciec/mapsync"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	// APIVersion is the Notion-Version header sent with every request.
	APIVersion = "2022-06-28"

	// DefaultTimeout is the HTTP client timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is Notion's documented average request rate per
	// integration, in requests per second.
	DefaultRateLimit = 3.0

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Client talks to one Notion database.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	token      string
	databaseID string
	schema     Schema
	timeout    time.Duration
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the HTTP client. Its timeout takes precedence over
// WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit sets the request rate in requests per second.
// A value of zero or less disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithSchema sets the database property names.
func WithSchema(s Schema) Option {
	return func(c *Client) {
		c.schema = s
	}
}

// WithClock sets the clock used for the date-added property.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new Client for the database. Returns EINVALID if the
// token or database id is missing.
func NewClient(token, databaseID string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	databaseID = strings.TrimSpace(databaseID)
	if token == "" {
		return nil, mapsync.Errorf(mapsync.EINVALID, "notion token required")
	}
	if databaseID == "" {
		return nil, mapsync.Errorf(mapsync.EINVALID, "notion database id required")
	}

	c := &Client{
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		baseURL:    DefaultBaseURL,
		token:      token,
		databaseID: databaseID,
		schema:     DefaultSchema(),
		timeout:    DefaultTimeout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// DatabaseID returns the configured database id.
func (c *Client) DatabaseID() string {
	return c.databaseID
}

// apiError is the body Notion returns with non-2xx responses.
type apiError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return mapsync.Errorf(mapsync.EUNAVAILABLE, "notion unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return mapsync.Errorf(mapsync.EUNAVAILABLE, "notion response truncated")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps a failed response onto an application error.
func statusError(resp *http.Response) error {
	var body apiError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}
	msg := fmt.Sprintf("notion: %s", body.Message)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return mapsync.Errorf(mapsync.EUNAVAILABLE, "%s", msg)
	case resp.StatusCode >= 500:
		return mapsync.Errorf(mapsync.EUNAVAILABLE, "%s", msg)
	case resp.StatusCode == http.StatusConflict:
		// Notion reports write collisions as conflict_error and expects a retry.
		return mapsync.Errorf(mapsync.EUNAVAILABLE, "%s", msg)
	case resp.StatusCode == http.StatusBadRequest:
		return mapsync.Errorf(mapsync.EINVALID, "%s", msg)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return mapsync.Errorf(mapsync.EUNAUTHORIZED, "%s", msg)
	case resp.StatusCode == http.StatusNotFound:
		return mapsync.Errorf(mapsync.ENOTFOUND, "%s", msg)
	default:
		return mapsync.Errorf(mapsync.EINTERNAL, "%s (HTTP %d)", msg, resp.StatusCode)
	}
}
