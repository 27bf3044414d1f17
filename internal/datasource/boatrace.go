package datasource

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/boatrace-predictor/internal/logger"
	"github.com/yourusername/boatrace-predictor/internal/metrics"
	"github.com/yourusername/boatrace-predictor/internal/models"
)

const (
	boatraceSourceName = "boatrace"
	// maxPageBytes bounds how much of a response body is read.
	maxPageBytes = 4 << 20
)

// BoatraceClient fetches race list pages from the official schedule site.
type BoatraceClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	userAgent  string
	cache      *PageCache
	logger     *logger.RaceLogger
}

// BoatraceOption customizes a BoatraceClient.
type BoatraceOption func(*BoatraceClient)

// WithPageCache serves repeated fetches of the same URL from cache.
func WithPageCache(cache *PageCache) BoatraceOption {
	return func(c *BoatraceClient) {
		c.cache = cache
	}
}

// NewBoatraceClient creates a client for the race list page at baseURL.
func NewBoatraceClient(httpClient *RateLimitedHTTPClient, baseURL, userAgent string, log *logrus.Logger, opts ...BoatraceOption) *BoatraceClient {
	if log == nil {
		log = logger.Discard()
	}
	c := &BoatraceClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger.NewRaceLogger(log),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the data source name
func (c *BoatraceClient) Name() string {
	return boatraceSourceName
}

// RaceURL builds the deterministic page URL for a query.
func (c *BoatraceClient) RaceURL(query models.RaceQuery) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	params := u.Query()
	params.Set("rno", strconv.Itoa(query.RaceNumber))
	params.Set("jcd", models.PadVenueCode(query.VenueCode))
	params.Set("hd", query.Date)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// FetchRacePage performs one GET for the race page. Any transport failure,
// timeout or non-2xx status is returned as a *FetchError. The client timeout
// bounds the whole call, rate limiter wait included.
func (c *BoatraceClient) FetchRacePage(ctx context.Context, query models.RaceQuery) ([]byte, error) {
	pageURL, err := c.RaceURL(query)
	if err != nil {
		return nil, NewFetchError(boatraceSourceName, ErrCodeInvalidURL, "failed to build race url", err)
	}

	if c.cache != nil {
		if page, ok := c.cache.Get(pageURL); ok {
			metrics.RecordPageCacheHit()
			return page, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout())
	defer cancel()

	start := time.Now()
	page, err := c.fetch(ctx, pageURL)
	duration := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = FetchErrorCode(err)
	}
	metrics.RecordPageFetch(outcome, duration.Seconds())
	c.logger.LogFetch(query.String(), pageURL, len(page), duration, err)

	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(pageURL, page)
	}
	return page, nil
}

func (c *BoatraceClient) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, NewFetchError(boatraceSourceName, ErrCodeInvalidURL, "failed to create request", err)
	}
	setBrowserHeaders(req, c.userAgent)

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		if isTimeout(err) {
			return nil, NewFetchError(boatraceSourceName, ErrCodeTimeout, "race page request timed out", err)
		}
		return nil, NewFetchError(boatraceSourceName, ErrCodeNetworkError, "failed to fetch race page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageBytes))
		ferr := NewFetchError(boatraceSourceName, ErrCodeHTTPStatus, "unexpected response status", nil)
		ferr.StatusCode = resp.StatusCode
		return nil, ferr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, NewFetchError(boatraceSourceName, ErrCodeTimeout, "race page body timed out", err)
		}
		return nil, NewFetchError(boatraceSourceName, ErrCodeReadError, "failed to read race page", err)
	}

	return body, nil
}

func setBrowserHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.8,en;q=0.6")
	req.Header.Set("Cache-Control", "no-cache")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
