package main

import "errors"

// KnownMetrics is the set of metric names exported by the pricepi gateway
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Gateway HTTP metrics.
	"pricepi_http_request_duration_seconds_bucket": true,
	"pricepi_http_requests_total":                  true,

	// Health metrics.
	"pricepi_healthz_up": true,

	// Upstream Pricepi API metrics.
	"pricepi_client_requests_total":                  true,
	"pricepi_client_request_duration_seconds_bucket": true,
	"pricepi_client_products_total":                  true,

	// Recording rules.
	"pricepi:http_requests:rate5m":              true,
	"pricepi:http_errors:rate5m":                true,
	"pricepi:client_requests:rate5m":            true,
	"pricepi:client_failures:rate5m":            true,
	"pricepi:client_products:rate5m":            true,
	"pricepi:client_requests_by_outcome:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
