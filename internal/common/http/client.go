// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is the outbound client for vendor REST calls. Per-request
// deadlines come from the caller's context; the timeout here is the
// backstop for requests issued without one.
type Client struct {
	inner *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		inner: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.inner.Do(req.WithContext(ctx))
}
