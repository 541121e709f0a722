// ABOUTME: Standard HTTP client implementation with retry and timeout support
// ABOUTME: Used for feed retrieval, discovery and model backend requests

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdigest/core/interfaces"
)

const (
	defaultRetries = 3
	userAgent      = "newsdigest/1.0 (+https://github.com/newsdigest)"
)

// Client implements the HTTPClient interface using the standard library.
// GET requests retry on transport errors and 5xx responses with
// exponential backoff; POST requests are not retried because scoring
// calls are not idempotent from a cost perspective.
type Client struct {
	client  *http.Client
	retries int
}

var _ interfaces.HTTPClient = (*Client)(nil)

// NewClient creates an HTTP client with the specified per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		retries: defaultRetries,
	}
}

// Get performs an HTTP GET request
func (c *Client) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/html, */*")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &response{statusCode: resp.StatusCode, body: resp.Body, headers: resp.Header}, nil
}

// Post performs an HTTP POST request with a JSON body
func (c *Client) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &response{statusCode: resp.StatusCode, body: resp.Body, headers: resp.Header}, nil
}

// response implements the Response interface
type response struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *response) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *response) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *response) Header(key string) string {
	return r.headers.Get(key)
}
