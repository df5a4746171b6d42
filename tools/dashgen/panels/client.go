package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// quantile returns a histogram_quantile expression over a bucket series
// scoped to the gateway job.
func quantile(q float64, bucket string) string {
	return fmt.Sprintf(`histogram_quantile(%.2f, sum(rate(%s{job="%s"}[5m])) by (le))`, q, bucket, Job)
}

// UpstreamOutcomes returns a timeseries panel showing Pricepi API calls per
// second split by outcome.
func UpstreamOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Upstream Calls by Outcome").
		Description("Pricepi API calls per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`pricepi:client_requests_by_outcome:rate5m`, "{{outcome}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UpstreamLatency returns a timeseries panel showing Pricepi API call
// latency percentiles.
func UpstreamLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Upstream Latency").
		Description("Pricepi API round trip including response parsing").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(quantile(0.50, "pricepi_client_request_duration_seconds_bucket"), "p50", "A")).
		WithTarget(PromQuery(quantile(0.99, "pricepi_client_request_duration_seconds_bucket"), "p99", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ProductsRate returns a timeseries panel showing products parsed per
// second.
func ProductsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Products Rate").
		Description("Products parsed from Pricepi responses per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`pricepi:client_products:rate5m`, "products/s", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FailureBreakdown returns a bar gauge panel showing failed Pricepi API
// calls in the last hour by outcome.
func FailureBreakdown() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Failures by Outcome (1h)").
		Description("Failed Pricepi API calls in the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(pricepi_client_requests_total{job="`+Job+`",outcome!="success"}[1h])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds())
}
