package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client loads the first page of products from a catalog endpoint.
type Client struct {
	endpoint   string
	pageSize   int
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for endpoint that keeps at most pageSize products.
// A pageSize below 1 keeps everything the endpoint returns.
func NewClient(endpoint string, pageSize int, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		pageSize:   pageSize,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client fetches.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch issues one GET to the endpoint and returns the first pageSize products
// in the order the endpoint sent them. No query, custom headers or credentials are sent.
func (c *Client) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog responded",
		zap.String("endpoint", c.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	if page.Products == nil {
		return nil, ErrMissingProducts
	}

	products := *page.Products
	if c.pageSize > 0 && len(products) > c.pageSize {
		products = products[:c.pageSize]
	}
	return products, nil
}

// Load is Fetch wrapped in a Result.
func (c *Client) Load(ctx context.Context) Result {
	products, err := c.Fetch(ctx)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Products: products}
}
