// Package tracefetch retrieves runs, traces and conversation threads from a
// LangSmith-compatible tracing service and reshapes them into normalized
// in-memory records.
package tracefetch

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	defaultBaseURL       = "https://api.smith.langchain.com"
	defaultMaxConcurrent = 5
)

// Client talks to the remote tracing service. All fetch methods are safe to
// call concurrently; the only state shared between calls is the project-id
// cache.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	logger        *slog.Logger
	maxConcurrent int
	projects      *ProjectCache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for batch-item warnings. Logging is
// discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMaxConcurrent sets the default concurrency bound for bulk fetches.
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		c.maxConcurrent = n
	}
}

// WithProjectCache injects a caller-owned project name resolution cache.
func WithProjectCache(cache *ProjectCache) Option {
	return func(c *Client) {
		c.projects = cache
	}
}

// New creates a Client authenticated with the given API key.
func New(apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		httpClient:    http.DefaultClient,
		baseURL:       defaultBaseURL,
		apiKey:        apiKey,
		logger:        slog.New(slog.DiscardHandler),
		maxConcurrent: defaultMaxConcurrent,
		projects:      NewProjectCache(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}
