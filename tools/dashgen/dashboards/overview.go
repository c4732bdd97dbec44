// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/storefront-ranker/tools/dashgen/panels"
)

// BuildOverview constructs the Ranker Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Ranker Overview").
		Uid("ranker-overview").
		Tags([]string{"ranker", "storefront-ranker"}).
		Refresh("1m").
		Time("now-7d", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.LastRun()).
		WithPanel(panels.Runs24h()).
		WithPanel(panels.Failures24h()).
		WithPanel(panels.ExclusionRatio()))

	// Row 2: Runs.
	b.WithRow(dashboard.NewRowBuilder("Runs").
		WithPanel(panels.RunDuration()).
		WithPanel(panels.BatchSize()).
		WithPanel(panels.ScoredProducts()))

	// Row 3: Products.
	b.WithRow(dashboard.NewRowBuilder("Products").
		WithPanel(panels.ExclusionsByReason()).
		WithPanel(panels.BoostsApplied()).
		WithPanel(panels.ScoreDistribution()))

	// Row 4: Configuration.
	b.WithRow(dashboard.NewRowBuilder("Configuration").
		WithPanel(panels.ConfigRejections()).
		WithPanel(panels.ConfigWarnings()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
