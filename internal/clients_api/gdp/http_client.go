package gdp

// HTTP loader for the GDP dataset document
// Requests pass through a rate limiter and a circuit breaker; retries are opt-in
// Every failure is returned as *dataset.FetchError so callers abort the render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gdp-chart/internal/dataset"
	"gdp-chart/internal/infra/log"
	"gdp-chart/internal/infra/retry"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultURL is the public GDP dataset used by the chart.
const DefaultURL = "https://raw.githubusercontent.com/FreeCodeCamp/ProjectReferenceData/master/GDP-data.json"

// ErrFetch is dataset.ErrFetch, re-exported for callers of this package.
var ErrFetch = dataset.ErrFetch

type Config struct {
	URL             string
	Timeout         time.Duration
	MaxRetries      int
	RateLimit       float64 // requests per second, 0 disables the limiter
	MaxResponseSize int64
	UserAgent       string
}

func DefaultConfig() Config {
	return Config{
		URL:             DefaultURL,
		Timeout:         30 * time.Second,
		RateLimit:       5,
		MaxResponseSize: 10 * 1024 * 1024,
		UserAgent:       "gdpchart/1.0",
	}
}

// Client fetches and decodes the dataset. It satisfies barchart.Source.
type Client struct {
	url             string
	userAgent       string
	httpClient      *http.Client
	rateLimiter     *rate.Limiter
	circuitBreaker  *gobreaker.CircuitBreaker
	retry           retry.Options
	maxResponseSize int64
}

func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxResponseSize <= 0 {
		cfg.MaxResponseSize = def.MaxResponseSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GDPDataset",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.LogWarn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		url:            cfg.URL,
		userAgent:      cfg.UserAgent,
		rateLimiter:    limiter,
		circuitBreaker: breaker,
		retry: retry.Options{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  300 * time.Millisecond,
			MaxDelay:   5 * time.Second,
			Backoff:    2.0,
		},
		maxResponseSize: cfg.MaxResponseSize,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) URL() string { return c.url }

// Load performs the GET and decodes the document.
func (c *Client) Load(ctx context.Context) (dataset.Series, error) {
	requestID := log.GenerateRequestID()
	startTime := time.Now()

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return dataset.Series{}, &dataset.FetchError{Source: c.url, Op: "wait", Err: err}
		}
	}

	var body []byte
	err := retry.Do(ctx, c.retry, func() error {
		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			b, err := c.get(ctx, requestID)
			if err != nil {
				return nil, err
			}
			body = b
			return nil, nil
		})
		return err
	})
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		log.LogError("Dataset fetch failed",
			zap.String("request_id", requestID),
			zap.String("endpoint", c.url),
			zap.Int64("duration_ms", duration),
			zap.Error(err))
		return dataset.Series{}, &dataset.FetchError{Source: c.url, Op: "GET", Err: err}
	}

	series, err := dataset.Decode(bytes.NewReader(body))
	if err != nil {
		log.LogError("Dataset decode failed", zap.String("request_id", requestID), zap.Error(err))
		return dataset.Series{}, &dataset.FetchError{Source: c.url, Op: "decode", Err: err}
	}

	log.LogSuccess("Dataset loaded",
		zap.String("request_id", requestID),
		zap.Int("points", series.Len()),
		log.ByteSize("size", int64(len(body))),
		zap.Int64("duration_ms", duration))
	return series, nil
}

func (c *Client) get(ctx context.Context, requestID string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	log.LogRequest(requestID, req.Method, c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.LogResponse(requestID, resp.StatusCode, time.Since(start).Milliseconds(), zap.String("endpoint", c.url))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       body,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if int64(len(body)) > c.maxResponseSize {
		return nil, fmt.Errorf("response exceeds %d bytes", c.maxResponseSize)
	}
	return body, nil
}
