package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"openmarkets/internal/metrics"
	"openmarkets/pkg/logger"
)

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxBodyBytes     = 16 << 20
)

var (
	ErrNotFound    = errors.New("yahoo: symbol not found")
	ErrRateLimited = errors.New("yahoo: rate limited")
	ErrNoData      = errors.New("yahoo: no data returned")
	errCrumbStale  = errors.New("yahoo: crumb rejected")
)

type Config struct {
	BaseURL   string
	CookieURL string
	Timeout   time.Duration
	// MaxRetries is the number of retries after the first attempt. Zero
	// disables retries.
	MaxRetries        int
	RequestsPerMinute int
	ProxyURL          string
	UserAgent         string
	// RetryInitialInterval overrides the first backoff wait.
	RetryInitialInterval time.Duration
}

// Client talks to the public Yahoo Finance JSON endpoints. It is safe for
// concurrent use.
type Client struct {
	http      *http.Client
	baseURL   string
	cookieURL string
	userAgent string
	maxTries  uint
	retryWait time.Duration
	limiter   *rate.Limiter
	tracer    trace.Tracer
	log       *logger.Logger

	mu    sync.Mutex
	crumb string
}

func NewClient(tracer trace.Tracer, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CookieURL == "" {
		cfg.CookieURL = DefaultCookieURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 120
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyURL != "" {
		if u, err := url.Parse(cfg.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	jar, _ := cookiejar.New(nil)

	burst := cfg.RequestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			Jar:       jar,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		cookieURL: cfg.CookieURL,
		userAgent: cfg.UserAgent,
		maxTries:  uint(cfg.MaxRetries) + 1,
		retryWait: cfg.RetryInitialInterval,
		limiter:   rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), burst),
		tracer:    tracer,
		log:       logger.Get().With("component", "yahoo"),
	}
}

// request describes one upstream call. endpoint labels spans and metrics.
type request struct {
	endpoint string
	path     string
	query    url.Values
	crumb    bool
}

// do performs req with rate limiting and retries on 429, 5xx and transport
// errors. A rejected crumb is refreshed once per attempt.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "yahoo."+req.endpoint)
	defer span.End()
	span.SetAttributes(attribute.String("yahoo.path", req.path))

	op := func() ([]byte, error) {
		body, err := c.attempt(ctx, req)
		if errors.Is(err, errCrumbStale) {
			c.resetCrumb()
			body, err = c.attempt(ctx, req)
		}
		return body, err
	}

	policy := backoff.NewExponentialBackOff()
	if c.retryWait > 0 {
		policy.InitialInterval = c.retryWait
	}
	body, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.log.Warnw("retrying upstream request", "endpoint", req.endpoint, "error", err, "wait", wait)
		}),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, req request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(err)
	}

	query := url.Values{}
	for k, v := range req.query {
		query[k] = v
	}
	if req.crumb {
		crumb, err := c.getCrumb(ctx)
		if err != nil {
			return nil, err
		}
		query.Set("crumb", crumb)
	}

	u := c.baseURL + req.path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.ObserveUpstream(req.endpoint, 0)
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("yahoo %s: %w", req.endpoint, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(req.endpoint, resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("yahoo %s read body: %w", req.endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized && req.crumb:
		return nil, errCrumbStale
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, req.path))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("yahoo %s: status %d", req.endpoint, resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("yahoo %s: status %d, body: %s", req.endpoint, resp.StatusCode, truncate(body, 200)))
	}
}

// getCrumb returns the cached crumb, performing the cookie handshake first
// when there is none.
func (c *Client) getCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.crumb != "" {
		return c.crumb, nil
	}

	// fc.yahoo.com answers 404 but sets the session cookie.
	cookieReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cookieURL, nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	cookieReq.Header.Set("User-Agent", c.userAgent)
	if resp, err := c.http.Do(cookieReq); err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	crumbReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/test/getcrumb", nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	crumbReq.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(crumbReq)
	if err != nil {
		metrics.ObserveUpstream("crumb", 0)
		return "", fmt.Errorf("yahoo crumb: %w", err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("crumb", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", fmt.Errorf("yahoo crumb read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	crumb := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK || crumb == "" || strings.Contains(crumb, "<") {
		return "", fmt.Errorf("yahoo crumb: status %d", resp.StatusCode)
	}

	c.crumb = crumb
	return crumb, nil
}

func (c *Client) resetCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
