// Package client provides a thin HTTP client for the pricepi gateway. It
// implements pricepi.Searcher, so callers can switch between the gateway and
// the Pricepi API directly.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

// Client is a thin HTTP client for the pricepi gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ pricepi.Searcher = (*Client)(nil)

// New creates a new gateway client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

type searchResponse struct {
	Products []pricepi.Product `json:"products"`
	Count    int               `json:"count"`
}

// errorModel is the subset of the gateway's RFC 9457 error body we read.
type errorModel struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Query implements pricepi.Searcher by calling GET /api/v1/search.
func (c *Client) Query(ctx context.Context, req pricepi.SearchRequest) ([]pricepi.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{
		"query":    {req.Query},
		"currency": {req.Currency},
		"limit":    {strconv.Itoa(req.Limit)},
		"offset":   {strconv.Itoa(req.Offset)},
		"sort":     {string(req.Sort())},
	}
	if req.Seller != "" {
		params.Set("seller", req.Seller)
	}
	if req.IncludeUnknownSellers {
		params.Set("unknown", "true")
	}

	var resp searchResponse
	if err := c.get(ctx, "/api/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Products == nil {
		resp.Products = []pricepi.Product{}
	}
	return resp.Products, nil
}

// get performs a GET request and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return fmt.Errorf("gateway not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var em errorModel
		if json.Unmarshal(respBody, &em) == nil && em.Detail != "" {
			return fmt.Errorf("gateway error (HTTP %d): %s", resp.StatusCode, em.Detail)
		}
		return fmt.Errorf("gateway error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func isConnectionRefused(err error) bool {
	return strings.Contains(err.Error(), "connection refused")
}
