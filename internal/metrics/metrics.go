// Package metrics defines Prometheus metrics for pricepi.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pricepi"

// Outcome label values for PricepiRequestsTotal.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalid        = "invalid_request"
	OutcomeRemoteError    = "remote_error"
	OutcomeParseError     = "parse_error"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
)

// HTTP metrics for the search gateway.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Pricepi API client metrics.
var (
	PricepiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total Pricepi API queries by outcome.",
	}, []string{"outcome"})

	PricepiRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of Pricepi API queries, signing through parsing, in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	PricepiProductsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "products_total",
		Help:      "Total number of products returned by successful queries.",
	})
)

// System health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last /healthz probe succeeded (1) or failed (0).",
	})
)
