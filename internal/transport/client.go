// Package transport provides the shared HTTP client used by the store
// fetchers and the asset downloader. Every call carries a timeout so a
// stalled endpoint reads as a fetch failure, never a hang.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/appshelf/appshelf/pkg/errors"
)

// DefaultTimeout bounds every HTTP call issued through the client.
const DefaultTimeout = 30 * time.Second

// Client wraps an http.Client with the defaults the pipeline needs.
type Client struct {
	http *http.Client
}

// New creates a transport client. A non-positive timeout falls back to
// DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request with context support.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("create", "GET "+url, err)
	}
	req.Header.Set("Accept", "*/*")
	return c.http.Do(req)
}
