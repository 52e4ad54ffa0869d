package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finaily/outcome"
	"finaily/types"
)

const (
	// DefaultBaseURL is used when no base URL is configured
	DefaultBaseURL = "http://localhost:8000/v1"

	// DefaultTimeout bounds a single request; expiry surfaces as NETWORK_ERROR
	DefaultTimeout = 5 * time.Second

	// DefaultLimit is the number of articles requested per symbol
	DefaultLimit = 10

	// MaxLimit is the largest article limit the backend accepts
	MaxLimit = 20

	userAgent = "finaily-client/1.0"
)

// API is the backend surface used by the controllers
type API interface {
	SearchTickers(ctx context.Context, query string) outcome.Outcome[types.SearchResponse]
	News(ctx context.Context, symbol string, opts NewsOptions) outcome.Outcome[types.NewsResponse]
	MarketPulse(ctx context.Context, lang types.Language) outcome.Outcome[types.NewsResponse]
	Me(ctx context.Context, credential string) outcome.Outcome[types.UserProfile]
	UpdateMe(ctx context.Context, credential string, update types.ProfileUpdate) outcome.Outcome[types.UserProfile]
}

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
	Logger     *slog.Logger
}

// Client talks to the fin-aily backend. It keeps no session state: credentials
// are passed per call, so one Client is safe to share between goroutines.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

var _ API = (*Client)(nil)

// New creates a backend client
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = userAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		userAgent:  ua,
		logger:     logger,
	}
}

// BaseURL returns the configured endpoint without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}
