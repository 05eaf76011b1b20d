// Package api provides the HTTP client for the chat collaborator.
package api

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/sanchai/sanchai/internal/models"
)

// Client talks to the chat collaborator over HTTP
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	timeout    time.Duration
	logger     *zap.Logger
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithBaseURL sets the collaborator base URL (scheme://host[:port][/prefix])
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient injects the underlying HTTP client (used by tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new collaborator client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		baseURL: models.DefaultBackendURL,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.baseURL = strings.TrimRight(strings.TrimSpace(client.baseURL), "/")
	if client.baseURL == "" {
		return nil, fmt.Errorf("backend URL cannot be empty")
	}
	if !strings.HasPrefix(client.baseURL, "http://") && !strings.HasPrefix(client.baseURL, "https://") {
		return nil, fmt.Errorf("backend URL must start with http:// or https://: %q", client.baseURL)
	}
	if client.timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative: %v", client.timeout)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the collaborator base URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout (zero means none)
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Close releases idle connections. In-flight requests are not aborted.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}
