// Package transport performs the HTTP GETs that retrieve remote files.
package transport

import (
	"context"
	"net/http"

	"github.com/EthanYidong/rehost/pkg/constants"
	"github.com/EthanYidong/rehost/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client fetches remote files as text.
type Client struct {
	http      *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		userAgent: constants.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request with the decorators applied in order.
func (c *Client) Get(ctx context.Context, url string, decorators ...Decorator) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchError(url, 0, "cannot build request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for _, d := range decorators {
		d.Apply(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapFetch(url, err)
	}
	return resp, nil
}

// FetchText GETs url and returns its body decoded as text. Any status
// outside 2xx is a FetchError.
func (c *Client) FetchText(ctx context.Context, url string, decorators ...Decorator) (string, error) {
	resp, err := c.Get(ctx, url, decorators...)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.NewFetchError(url, resp.StatusCode, "unexpected status "+resp.Status, nil)
	}

	text, err := ReadText(resp)
	if err != nil {
		return "", errors.NewFetchError(url, resp.StatusCode, "invalid response body", err)
	}
	return text, nil
}
