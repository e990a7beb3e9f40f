// Package yahoo implements fundamentals.Provider on top of the Yahoo Finance
// query endpoints.
//
// Yahoo does not publish this API: endpoints require a session cookie and a
// "crumb" token obtained once per Client, and answer 429 when called too fast.
// A Client handles both and is safe for concurrent use.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/etnz/fundamentals"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL of the query endpoints.
	DefaultBaseURL = "https://query2.finance.yahoo.com"

	// DefaultCookieURL is visited once to receive the session cookie.
	DefaultCookieURL = "https://fc.yahoo.com"

	// DefaultUserAgent is sent with every request, Yahoo rejects Go's default one.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 2.0
)

// Client is a Yahoo Finance client.
type Client struct {
	baseURL   string
	cookieURL string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter

	mu    sync.Mutex
	crumb string
}

var _ fundamentals.Provider = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithCookieURL sets the address visited to open a session.
func WithCookieURL(addr string) Option {
	return func(c *Client) { c.cookieURL = addr }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit sets a custom rate limit. Zero or less disables it.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
}

// New returns a Client with its own cookie jar.
func New(opts ...Option) *Client {
	jar, _ := cookiejar.New(nil) // never fails without options
	c := &Client{
		baseURL:   DefaultBaseURL,
		cookieURL: DefaultCookieURL,
		userAgent: DefaultUserAgent,
		http: &http.Client{
			Jar:       jar,
			Timeout:   DefaultTimeout,
			Transport: &logTransport{base: http.DefaultTransport},
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned when Yahoo answers with anything but 200.
type StatusError struct {
	StatusCode int
	Status     string
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %s: %s", e.Path, e.Status)
}

// logTransport logs every exchange with Yahoo.
type logTransport struct {
	base http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.Host+req.URL.Path).Msg("http request failed")
		return nil, err
	}
	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Host+req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("http request")
	return resp, nil
}

// get performs a rate limited GET and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, addr string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Path: req.URL.Host + req.URL.Path}
	}
	return io.ReadAll(resp.Body)
}

// session returns the crumb of the current session, opening one if needed.
func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.crumb != "" {
		return c.crumb, nil
	}

	// the cookie comes with an error status, only the Set-Cookie header matters.
	if _, err := c.get(ctx, c.cookieURL); err != nil {
		var serr *StatusError
		if !errors.As(err, &serr) {
			return "", fmt.Errorf("cannot open yahoo session: %w", err)
		}
	}
	body, err := c.get(ctx, c.baseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("cannot get yahoo crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{ ") {
		return "", fmt.Errorf("cannot get yahoo crumb: unexpected answer %q", crumb)
	}
	log.Debug().Msg("yahoo session opened")
	c.crumb = crumb
	return crumb, nil
}

// resetSession forgets the crumb so the next call opens a new session.
func (c *Client) resetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.crumb = ""
}

// isUnauthorized reports whether err is a rejected crumb.
func isUnauthorized(err error) bool {
	var serr *StatusError
	return errors.As(err, &serr) && (serr.StatusCode == http.StatusUnauthorized || serr.StatusCode == http.StatusForbidden)
}
