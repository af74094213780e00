package distribution

// HTTP transport for the holder-distribution API
// Rate limiting, circuit breaking and retry live here;
// business logic stays out of this file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"tierwatch/internal/infra/log"
	"tierwatch/internal/infra/retry"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL points at the production distribution API.
const DefaultBaseURL = "https://api.luminex.io/spark"

// Client is the distribution API client.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	rateLimiter     *rate.Limiter
	circuitBreaker  *gobreaker.CircuitBreaker
	retryOpts       retry.Options
	maxResponseSize int64
}

// Options tune the client; zero values fall back to defaults.
type Options struct {
	BaseURL         string
	RequestTimeout  time.Duration
	MaxRetries      int
	MaxResponseSize int64
}

// NewClient builds a Client with rate limiting (10 rps, burst 20) and a
// circuit breaker that trips after 5 consecutive failures.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxResponseSize := opts.MaxResponseSize
	if maxResponseSize <= 0 {
		maxResponseSize = 10 * 1024 * 1024 // 10MB
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "DistributionAPI",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		baseURL:         baseURL,
		rateLimiter:     rate.NewLimiter(rate.Limit(10), 20),
		circuitBreaker:  circuitBreaker,
		maxResponseSize: maxResponseSize,
		retryOpts: retry.Options{
			MaxRetries: maxRetries,
			BaseDelay:  300 * time.Millisecond,
			MaxDelay:   5 * time.Second,
			Backoff:    2.0,
		},
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: false,
				MaxIdleConns:      10,
				IdleConnTimeout:   90 * time.Second,
			},
		},
	}
}

// MakeRequest performs a GET against the API with rate limiting,
// retry and circuit breaking, returning the raw response body.
func (c *Client) MakeRequest(ctx context.Context, endpoint string) ([]byte, error) {
	requestID := log.GenerateRequestID()
	startTime := time.Now()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var respBody []byte
	err := retry.Do(ctx, c.retryOpts, func() error {
		// Breaker-open errors are not retryable, so retry.Do stops
		// immediately once the breaker trips.
		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			body, err := c.doRequest(ctx, requestID, endpoint, startTime)
			if err != nil {
				return nil, err
			}
			respBody = body
			return body, nil
		})
		return err
	})
	if err != nil {
		log.LogError("Distribution API request failed",
			zap.String("request_id", requestID),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, err
	}

	return respBody, nil
}

func (c *Client) doRequest(ctx context.Context, requestID, endpoint string, startTime time.Time) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	setNormalizedHeaders(req)

	log.LogRequest(requestID, "GET", endpoint, zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, 0, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	duration := time.Since(startTime).Milliseconds()
	log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return respBody, nil
}

// setNormalizedHeaders sets browser-like headers; the API sits behind
// Cloudflare and rejects bare client signatures.
func setNormalizedHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
}
