// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/pricepi/tools/dashgen/panels"
)

// BuildOverview constructs the Pricepi Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Pricepi Overview").
		Uid("pricepi-overview").
		Tags([]string{"pricepi"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.UpstreamSuccessStat()).
		WithPanel(panels.ProductsStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: Gateway HTTP.
	b.WithRow(dashboard.NewRowBuilder("Gateway").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Upstream Pricepi API.
	b.WithRow(dashboard.NewRowBuilder("Pricepi API").
		WithPanel(panels.UpstreamOutcomes()).
		WithPanel(panels.UpstreamLatency()).
		WithPanel(panels.ProductsRate()).
		WithPanel(panels.FailureBreakdown()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
