// Package httpclient talks to a running `shipquote serve` so the CLI can
// price and list orders against a shared store.
package httpclient

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aalvaropc/shipquote/internal/domain"
)

type Config struct {
	// Total timeout for the entire request (includes redirects, reading body, etc).
	// A context deadline can still override this.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns int
}

func DefaultConfig() Config {
	return Config{
		Timeout:         15 * time.Second,
		DialTimeout:     5 * time.Second,
		KeepAlive:       30 * time.Second,
		ResponseHeader:  10 * time.Second,
		IdleConnTimeout: 90 * time.Second,
		MaxIdleConns:    10,
	}
}

func newHTTPClient(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:          cfg.MaxIdleConns,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}

// Client is a typed client for the shipquote HTTP API.
type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default transport (tests pass httptest's client).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithConfig(cfg Config) Option {
	return func(cl *Client) { cl.http = newHTTPClient(cfg) }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// New parses baseURL ("http://host:8080" or "host:8080").
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, invalidURL(raw, fmt.Errorf("base url is required"))
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, invalidURL(baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, invalidURL(baseURL, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return nil, invalidURL(baseURL, fmt.Errorf("missing host"))
	}

	c := &Client{
		base: u,
		http: newHTTPClient(DefaultConfig()),
		log:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.base.String() }

func invalidURL(raw string, err error) error {
	return &domain.OpError{
		Op:   "httpclient.new",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("invalid server url %q: %w: %w", raw, err, domain.ErrInvalidConfig),
	}
}
