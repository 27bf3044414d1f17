package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout   time.Duration
	RateLimit float64 // requests per second
}

// DefaultHTTPClientConfig returns recommended defaults
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:   10 * time.Second,
		RateLimit: 2.0,
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting. Retries
// are disabled: every request is attempted exactly once.
type RateLimitedHTTPClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultHTTPClientConfig().Timeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultHTTPClientConfig().RateLimit
	}

	entry := logrus.NewEntry(logrus.StandardLogger())
	if logger != nil {
		entry = logger.WithField("component", "http")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	return &RateLimitedHTTPClient{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  entry,
	}
}

// Do executes an HTTP request after waiting for the rate limiter
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		// Wait fails up front, without a context error, when the next token
		// would arrive after the deadline.
		if ctx.Err() == nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("rate limiter: %v: %w", err, context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("wrapping request: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("Outbound request")

	return c.client.Do(retryReq)
}

// Timeout returns the per-request timeout.
func (c *RateLimitedHTTPClient) Timeout() time.Duration {
	return c.client.HTTPClient.Timeout
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// noRetryPolicy never asks for another attempt. The transport error, if any,
// is handed back to the caller unchanged.
func noRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, err
}
