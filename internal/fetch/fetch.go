// Package fetch provides the HTTP client shared by the resort adapters and
// the weather client: identifying User-Agent, per-host rate limiting and
// circuit breaking, retries with exponential backoff, and TTL caching of
// response bodies.
package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/pfrederiksen/tahoe-conditions/internal/config"
	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
)

const (
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptJSON = "application/geo+json,application/json"
)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
)

// Client fetches resort pages and weather API responses.
type Client struct {
	http       *http.Client
	userAgent  string
	maxRetries int
	rateDelay  time.Duration

	pages *Cache // resort conditions pages
	api   *Cache // weather API responses

	mu          sync.Mutex
	lastRequest map[string]time.Time
	breakers    map[string]*gobreaker.CircuitBreaker
}

// New creates a Client from pipeline settings. Conditions pages and
// weather API responses are cached independently with their own TTLs.
func New(cfg *config.Config) *Client {
	return &Client{
		http:        &http.Client{Timeout: cfg.RequestTimeout},
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		rateDelay:   cfg.RateLimitDelay,
		pages:       NewCache(cfg.CacheDir, cfg.ConditionsTTL),
		api:         NewCache(filepath.Join(cfg.CacheDir, "api"), cfg.WeatherTTL),
		lastRequest: make(map[string]time.Time),
		breakers:    make(map[string]*gobreaker.CircuitBreaker),
	}
}

// FetchPage fetches a resort conditions page through the page cache.
func (c *Client) FetchPage(pageURL string) (string, error) {
	return c.get(pageURL, acceptHTML, c.pages)
}

// FetchJSON fetches a weather API endpoint through the API cache and
// decodes the response into v.
func (c *Client) FetchJSON(apiURL string, v interface{}) error {
	body, err := c.get(apiURL, acceptJSON, c.api)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("invalid JSON from %s: %w", apiURL, err)
	}
	return nil
}

func (c *Client) get(reqURL, accept string, cache *Cache) (string, error) {
	if body, ok := cache.Get(reqURL); ok {
		logger.IncrCounter("fetch.cache_hits")
		logger.Debug("Cache hit", logger.Fields{"url": reqURL})
		return body, nil
	}
	logger.IncrCounter("fetch.cache_misses")

	host := hostOf(reqURL)
	c.rateLimit(host)

	breaker := c.breaker(host)

	var body string
	op := func() error {
		start := time.Now()
		result, err := breaker.Execute(func() (interface{}, error) {
			return c.do(reqURL, accept)
		})
		logger.RecordTiming("fetch.request", time.Since(start))

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				// Host is failing fast; retrying this run won't help.
				return backoff.Permanent(fmt.Errorf("circuit open for %s: %w", host, err))
			}
			return err
		}
		body = result.(string)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 30 * time.Second

	retries := uint64(0)
	if c.maxRetries > 1 {
		retries = uint64(c.maxRetries - 1)
	}

	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, retries)); err != nil {
		return "", fmt.Errorf("fetching %s: %w", reqURL, err)
	}

	if err := cache.Set(reqURL, body); err != nil {
		logger.Debug("Cache write failed", logger.Fields{"url": reqURL, "error": err.Error()})
	}

	return body, nil
}

// do performs one HTTP GET. Transport errors, 429s and 5xx responses are
// retryable; any other non-200 status is permanent.
func (c *Client) do(reqURL, accept string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", errRateLimited
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", errServerError, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(data), nil
}

// rateLimit enforces a minimum delay between requests to the same host.
func (c *Client) rateLimit(host string) {
	c.mu.Lock()
	last, ok := c.lastRequest[host]
	var wait time.Duration
	if ok {
		if elapsed := time.Since(last); elapsed < c.rateDelay {
			wait = c.rateDelay - elapsed
		}
	}
	c.lastRequest[host] = time.Now().Add(wait)
	c.mu.Unlock()

	if wait > 0 {
		logger.Debug("Rate limiting", logger.Fields{"host": host, "wait": wait.String()})
		time.Sleep(wait)
	}
}

func (c *Client) breaker(host string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb, ok := c.breakers[host]
	if !ok {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: host})
		c.breakers[host] = cb
	}
	return cb
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
