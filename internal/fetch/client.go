package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/phishscan/internal/log"
)

const (
	// DefaultUserAgent mimics a current desktop Chrome.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultTimeout bounds one fetch end to end.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxBodySize is 2MB.
	DefaultMaxBodySize int64 = 2 * 1024 * 1024

	// maxRedirects matches net/http's own default.
	maxRedirects = 10
)

// ErrTooManyRedirects is reported when a redirect chain exceeds maxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// Result is the outcome of one fetch.
type Result struct {
	// URL is the address that was requested.
	URL string
	// FinalURL is the address after redirects; empty on failure.
	FinalURL string
	// StatusCode is the HTTP status; zero on failure.
	StatusCode int
	// Body is the response body, truncated to the configured limit.
	Body string
	// Err is set when no response body could be obtained.
	Err error
}

// OK reports whether a body was obtained.
func (r Result) OK() bool {
	return r.Err == nil
}

// Client fetches pages over HTTP.
// It is safe for concurrent use.
type Client struct {
	// client is the underlying HTTP client.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize limits how much of the body is read.
	maxBodySize int64

	// timeout is the per-fetch deadline.
	timeout time.Duration

	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithTimeout sets the per-fetch deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client with browser-like defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return ErrTooManyRedirects
				}
				return nil
			},
		},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		timeout:     DefaultTimeout,
		logger:      log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a GET request for target. It never returns an error
// directly; failures are carried in Result.Err.
func (c *Client) Fetch(ctx context.Context, target string) Result {
	result := Result{URL: target}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		result.Err = fmt.Errorf("failed to create request: %w", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("page fetch failed", "url", target, "error", err, "elapsed", time.Since(start))
		result.Err = fmt.Errorf("failed to fetch page: %w", err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		c.logger.Debug("page body read failed", "url", target, "error", err)
		result.Err = fmt.Errorf("failed to read body: %w", err)
		return result
	}

	result.StatusCode = resp.StatusCode
	result.FinalURL = resp.Request.URL.String()
	result.Body = string(body)

	c.logger.Debug("page fetched",
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)
	return result
}
