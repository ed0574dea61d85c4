// Package http provides HTTP-based implementations of leadscan.Fetcher and
// an HTTP server exposing leadscan.Scanner.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/leadscan"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps the number of bytes read from a response body.
const DefaultMaxBodySize = 5 << 20

// DefaultRelayBase is the relay endpoint used to fetch third-party pages.
// The percent-encoded target URL is appended to it.
const DefaultRelayBase = "https://corsproxy.io/?"

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "leadscan/1.0"

// Ensure fetchers implement leadscan.Fetcher at compile time.
var (
	_ leadscan.Fetcher = (*Fetcher)(nil)
	_ leadscan.Fetcher = (*RelayFetcher)(nil)
)

// config holds settings shared by Fetcher and RelayFetcher.
type config struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	userAgent   string
}

// Option configures a fetcher.
type Option func(*config)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithMaxBodySize sets the maximum number of body bytes accepted.
// Larger responses fail with a *leadscan.FetchError.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		c.maxBodySize = n
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets the underlying client. The timeout option still applies.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

func newConfig(opts []Option) config {
	c := config{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&c)
	}

	client := &http.Client{}
	if c.client != nil {
		*client = *c.client
	}
	client.Timeout = c.timeout
	c.client = client

	return c
}

// get issues a GET against requestURL and reports failures against targetURL.
func (c *config) get(ctx context.Context, requestURL, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", &leadscan.FetchError{URL: targetURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &leadscan.FetchError{URL: targetURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &leadscan.FetchError{URL: targetURL, Status: resp.StatusCode}
	}

	// Read one byte past the limit to detect oversized bodies.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return "", &leadscan.FetchError{URL: targetURL, Err: err}
	}
	if int64(len(body)) > c.maxBodySize {
		return "", &leadscan.FetchError{
			URL: targetURL,
			Err: fmt.Errorf("response body exceeds %d bytes", c.maxBodySize),
		}
	}

	return decodeBody(body, resp.Header.Get("Content-Type")), nil
}

// decodeBody converts body to UTF-8 when contentType declares another
// charset. Undeclared, unknown or undecodable charsets pass through as is.
func decodeBody(body []byte, contentType string) string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return string(body)
	}
	enc, name := charset.Lookup(params["charset"])
	if enc == nil || name == "utf-8" {
		return string(body)
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

// Fetcher retrieves page content directly from the target server.
// Suitable for server-side use where cross-origin restrictions do not apply.
type Fetcher struct {
	config
}

// NewFetcher creates a new direct HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{config: newConfig(opts)}
}

// Fetch retrieves the body of the page at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.get(ctx, url, url)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// RelayFetcher retrieves page content through a relay that performs the
// outbound request on the caller's behalf. The relay is addressed as
// <base><percent-encoded target URL>.
type RelayFetcher struct {
	config
	base string
}

// NewRelayFetcher creates a RelayFetcher for the given relay base.
// An empty base uses DefaultRelayBase.
func NewRelayFetcher(base string, opts ...Option) *RelayFetcher {
	if base == "" {
		base = DefaultRelayBase
	}
	return &RelayFetcher{config: newConfig(opts), base: base}
}

// Fetch retrieves the body of the page at target via the relay.
func (f *RelayFetcher) Fetch(ctx context.Context, target string) (string, error) {
	return f.get(ctx, f.RelayURL(target), target)
}

// RelayURL returns the relay request URL for target.
func (f *RelayFetcher) RelayURL(target string) string {
	return f.base + encodeComponent(target)
}

// componentUnescaper undoes the query-specific parts of url.QueryEscape so
// the result matches URI component encoding: spaces become %20 and the
// marks !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Close is a no-op.
func (f *RelayFetcher) Close() error {
	return nil
}
