package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/insightdelivered/hl-client/internal/common"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 2 // requests per second
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) hl-client/" + common.Version
)

// HTTPTransport implements Transport over net/http with a cookie jar.
type HTTPTransport struct {
	baseURL    *url.URL
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *common.Logger
}

// Option configures the transport
type Option func(*HTTPTransport)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(t *HTTPTransport) {
		t.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) Option {
	return func(t *HTTPTransport) {
		if requestsPerSecond > 0 {
			t.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(t *HTTPTransport) {
		t.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(t *HTTPTransport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// WithRoundTripper replaces the underlying http.RoundTripper. The cookie
// jar is kept.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(t *HTTPTransport) {
		t.httpClient.Transport = rt
	}
}

// NewHTTPTransport creates a transport rooted at baseURL.
func NewHTTPTransport(baseURL string, opts ...Option) (*HTTPTransport, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	t := &HTTPTransport{
		baseURL:   u,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Fetch performs a GET request.
func (t *HTTPTransport) Fetch(ctx context.Context, path string) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, nil)
}

// Submit POSTs fields as a url-encoded form.
func (t *HTTPTransport) Submit(ctx context.Context, path string, fields url.Values) (*Response, error) {
	return t.do(ctx, http.MethodPost, path, fields)
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, fields url.Values) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	target := t.baseURL.ResolveReference(ref)

	var body io.Reader
	if fields != nil {
		body = strings.NewReader(fields.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	if fields != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	t.logger.Debug().Str("method", method).Str("path", path).Msg("request")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	finalPath := NormalizePath(resp.Request.URL.Path)
	t.logger.Debug().Str("path", path).Str("final", finalPath).Int("status", resp.StatusCode).Msg("response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Path: path}
	}

	return &Response{
		FinalPath:  finalPath,
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
