// internal/scraper/client.go
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// HTTPClient wraps http.Client with the request discipline every fetch in
// the pipeline shares: a global rate limiter, user-agent rotation, retries
// with backoff on retryable status codes, and an explicit per-request
// timeout.
type HTTPClient struct {
	httpClient    *http.Client
	userAgents    []string
	currentUA     int
	uaMutex       sync.Mutex
	rateLimiter   *rate.Limiter
	retryAttempts int
	retryDelay    time.Duration
	headers       map[string]string
}

// ClientConfig defines configuration options for the HTTP client
type ClientConfig struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	UserAgents    []string
	Headers       map[string]string
	RateLimit     float64 // requests per second
	RateBurst     int
}

// NewHTTPClient creates a new HTTP client with the specified configuration
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryAttempts < 0 {
		config.RetryAttempts = 0
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 4.0
	}
	if config.RateBurst == 0 {
		config.RateBurst = 8
	}
	if len(config.UserAgents) == 0 {
		config.UserAgents = getDefaultUserAgents()
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &HTTPClient{
		httpClient:    httpClient,
		userAgents:    config.UserAgents,
		rateLimiter:   rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
		headers:       config.Headers,
	}
}

// Get performs an HTTP GET request with rate limiting and retry logic.
// Responses outside 2xx are closed and reported as errors.
func (c *HTTPClient) Get(ctx context.Context, targetURL string) (*http.Response, error) {
	if _, err := url.Parse(targetURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	var lastErr error

	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		c.setRequestHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w",
				attempt+1, c.retryAttempts+1, err)

			if attempt < c.retryAttempts {
				c.waitForRetry(attempt)
				continue
			}
			break
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("HTTP %d: %s (attempt %d/%d)",
			resp.StatusCode, resp.Status, attempt+1, c.retryAttempts+1)

		if !c.shouldRetryStatusCode(resp.StatusCode) {
			break
		}

		if attempt < c.retryAttempts {
			c.waitForRetry(attempt)
		}
	}

	return nil, lastErr
}

// GetDocument fetches a URL and parses the response body as an HTML
// document.
func (c *HTTPClient) GetDocument(ctx context.Context, targetURL string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, targetURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", targetURL, err)
	}

	return doc, nil
}

// setRequestHeaders configures request headers including user agent rotation
func (c *HTTPClient) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.getNextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.8,en;q=0.5")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
}

// getNextUserAgent returns the next user agent in rotation
func (c *HTTPClient) getNextUserAgent() string {
	c.uaMutex.Lock()
	defer c.uaMutex.Unlock()

	if len(c.userAgents) == 0 {
		return "StageScrapexter/1.0"
	}

	userAgent := c.userAgents[c.currentUA]
	c.currentUA = (c.currentUA + 1) % len(c.userAgents)

	return userAgent
}

// waitForRetry implements exponential backoff with jitter
func (c *HTTPClient) waitForRetry(attempt int) {
	backoffDelay := c.retryDelay * time.Duration(1<<uint(attempt))

	jitter := time.Duration(rand.Int63n(int64(backoffDelay/2) + 1))
	totalDelay := backoffDelay + jitter

	if totalDelay > 30*time.Second {
		totalDelay = 30 * time.Second
	}

	time.Sleep(totalDelay)
}

// shouldRetryStatusCode determines if a status code warrants a retry
func (c *HTTPClient) shouldRetryStatusCode(statusCode int) bool {
	retryableStatusCodes := map[int]bool{
		429: true, // Too Many Requests
		500: true, // Internal Server Error
		502: true, // Bad Gateway
		503: true, // Service Unavailable
		504: true, // Gateway Timeout
	}

	return retryableStatusCodes[statusCode]
}

// getDefaultUserAgents returns a set of realistic user agent strings
func getDefaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0",
	}
}
