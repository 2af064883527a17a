package whois

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	likewhois "github.com/likexian/whois"
	"golang.org/x/time/rate"

	"github.com/nao1215/phishscan/internal/log"
)

var (
	// ErrNoDomain is returned for an empty domain. IP literals and hosts
	// without a known public suffix have no registrable domain to query.
	ErrNoDomain = errors.New("no registrable domain to query")

	// ErrRateLimited is returned when the local query budget could not be
	// acquired before the lookup deadline.
	ErrRateLimited = errors.New("whois query rate limited")

	// ErrNotRegistered is returned when the registry reports no record.
	ErrNotRegistered = errors.New("domain is not registered")
)

// DefaultTimeout bounds a single lookup, including rate limiter wait.
const DefaultTimeout = 5 * time.Second

// QueryFunc fetches the raw WHOIS text for a domain.
type QueryFunc func(ctx context.Context, domain string) (string, error)

// Client performs registration lookups.
// It is safe for concurrent use.
type Client struct {
	// query performs the network round trip.
	query QueryFunc

	// limiter throttles outbound queries; nil means unthrottled.
	limiter *rate.Limiter

	// timeout is the per-lookup deadline.
	timeout time.Duration

	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-lookup deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit allows at most perSecond queries per second with the given
// burst. A non-positive rate leaves the client unthrottled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithQueryFunc replaces the network transport, mainly for tests.
func WithQueryFunc(q QueryFunc) Option {
	return func(c *Client) {
		if q != nil {
			c.query = q
		}
	}
}

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client that talks to the public WHOIS servers.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout: DefaultTimeout,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.query == nil {
		c.query = networkQuery(c.timeout)
	}
	return c
}

// Lookup queries registration metadata for domain. It always returns a
// Result; failures are reported through Result.Status.
func (c *Client) Lookup(ctx context.Context, domain string) Result {
	if domain == "" {
		return Failed(domain, ErrNoDomain)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Debug("whois rate limiter wait failed", "domain", domain, "error", err)
			return Failed(domain, fmt.Errorf("%w: %w", ErrRateLimited, err))
		}
	}

	start := time.Now()
	raw, err := c.query(ctx, domain)
	if err != nil {
		c.logger.Debug("whois query failed", "domain", domain, "error", err, "elapsed", time.Since(start))
		return Failed(domain, fmt.Errorf("whois query for %s: %w", domain, err))
	}

	created, err := ParseCreationDate(raw)
	if err != nil {
		c.logger.Debug("whois record unusable", "domain", domain, "error", err)
		return Failed(domain, err)
	}

	c.logger.Debug("whois lookup completed",
		"domain", domain,
		"creation_dates", len(created.Dates()),
		"elapsed", time.Since(start),
	)
	return Found(domain, created)
}

// networkQuery adapts the blocking likexian client to a context-aware
// QueryFunc. The client's own timeout ends the goroutine when ctx fires first.
func networkQuery(timeout time.Duration) QueryFunc {
	client := likewhois.NewClient()
	client.SetTimeout(timeout)

	return func(ctx context.Context, domain string) (string, error) {
		type reply struct {
			raw string
			err error
		}
		ch := make(chan reply, 1)
		go func() {
			raw, err := client.Whois(domain)
			ch <- reply{raw: raw, err: err}
		}()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case r := <-ch:
			return r.raw, r.err
		}
	}
}
