// Package pricepi provides a client for the Pricepi product-price search API.
//
// Requests are signed with a SHA-256 authcode computed from the search
// parameters, a Unix timestamp, the client ID and the account key. Responses
// are XML documents that either carry an error message or a list of results.
package pricepi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/pricepi/internal/metrics"
	"github.com/donaldgifford/pricepi/pkg/logger"
)

// DefaultEndpoint is the production Pricepi API endpoint.
const DefaultEndpoint = "https://api.pricepi.com/pricepiapi.pi"

const (
	maxErrorBody = 4096
	tracerName   = "github.com/donaldgifford/pricepi/pkg/pricepi"
)

// Searcher runs product searches.
type Searcher interface {
	Query(ctx context.Context, req SearchRequest) ([]Product, error)
}

// Client implements Searcher against the Pricepi HTTP API. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	clientID   string
	accountKey string
	endpoint   string
	client     *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	nowFunc    func() time.Time // for testing
}

// Option configures the Client.
type Option func(*Client)

// WithEndpoint overrides the default API endpoint.
func WithEndpoint(u string) Option {
	return func(c *Client) {
		c.endpoint = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTracerProvider sets the provider used for request spans. The default
// is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// WithNowFunc overrides the clock used for request timestamps.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = f
	}
}

// New creates a Pricepi client for the given client ID and account key.
func New(clientID, accountKey string, opts ...Option) *Client {
	c := &Client{
		clientID:   clientID,
		accountKey: accountKey,
		endpoint:   DefaultEndpoint,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Discard(),
		tracer:     otel.Tracer(tracerName),
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sign signs req with a fresh timestamp without sending it.
func (c *Client) Sign(req SearchRequest) (Signature, error) {
	if err := req.Validate(); err != nil {
		return Signature{}, err
	}
	return Sign(req, c.clientID, c.accountKey, c.nowFunc().Unix()), nil
}

// URL returns the full request URL for a signature.
func (c *Client) URL(sig Signature) string {
	return c.endpoint + "?" + sig.Values.Encode()
}

// Query implements Searcher.Query. It either returns every product in the
// response or an error, never both.
func (c *Client) Query(ctx context.Context, req SearchRequest) ([]Product, error) {
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "pricepi.Query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("pricepi.currency", req.Currency),
			attribute.String("pricepi.sortby", string(req.Sort())),
			attribute.Int("pricepi.offset", req.Offset),
			attribute.Int("pricepi.limit", req.Limit),
		),
	)
	defer span.End()

	products, err := c.query(ctx, req)

	outcome := outcomeOf(err)
	metrics.PricepiRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.PricepiRequestDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("pricepi.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		c.logger.WarnContext(ctx, "pricepi query failed",
			"query", req.Query,
			"outcome", outcome,
			"err", err,
		)
		return nil, err
	}

	metrics.PricepiProductsTotal.Add(float64(len(products)))
	span.SetAttributes(attribute.Int("pricepi.products", len(products)))
	c.logger.DebugContext(ctx, "pricepi query",
		"query", req.Query,
		"currency", req.Currency,
		"products", len(products),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return products, nil
}

func (c *Client) query(ctx context.Context, req SearchRequest) ([]Product, error) {
	sig, err := c.Sign(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(sig), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best-effort error body
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return ParseResponse(resp.Body)
}

func outcomeOf(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidPaging), errors.Is(err, ErrInvalidSort):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrRemote):
		return metrics.OutcomeRemoteError
	case errors.Is(err, ErrParse):
		return metrics.OutcomeParseError
	case errors.As(err, &httpErr):
		return metrics.OutcomeHTTPError
	default:
		return metrics.OutcomeTransportError
	}
}
