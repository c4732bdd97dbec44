package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ExclusionsByReason returns a timeseries panel showing hourly exclusions
// split by reason.
func ExclusionsByReason() *timeseries.PanelBuilder {
	return newTimeseries("Exclusions by Reason", "Products excluded per hour, by exclusion reason", ThirdWidth).
		WithTarget(PromQuery(
			`sum by (reason) (increase(ranker_exclusions_total[1h]))`,
			"{{reason}}", "A",
		)).
		Legend(TableLegend("mean", "max"))
}

// BoostsApplied returns a timeseries panel showing hourly boost applications
// split by boost.
func BoostsApplied() *timeseries.PanelBuilder {
	return newTimeseries("Boosts Applied", "Boosts added to eligible products per hour, by boost", ThirdWidth).
		WithTarget(PromQuery(
			`sum by (boost) (increase(ranker_boosts_applied_total[1h]))`,
			"{{boost}}", "A",
		))
}

// ScoreDistribution returns a bar gauge panel showing the distribution of
// final scores across histogram buckets.
func ScoreDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Score Distribution").
		Description("Final scores of eligible products (0-100) over the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(increase(ranker_score_distribution_bucket[24h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(Thresholds("green")).
		ColorScheme(ColorSchemePaletteClassic())
}

// ConfigRejections returns a stat panel showing rejected configurations in
// the past 24 hours.
func ConfigRejections() *stat.PanelBuilder {
	return newStat("Rejected Configs (24h)", "Ranking configurations rejected by validation in the last 24 hours", TSWidth, TSHeight).
		WithTarget(PromQuery(`sum(increase(ranker_config_rejected_total[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		GraphMode(common.BigValueGraphModeArea)
}

// ConfigWarnings returns a timeseries panel showing configuration warnings
// split by code.
func ConfigWarnings() *timeseries.PanelBuilder {
	return newTimeseries("Config Warnings", "Non-fatal configuration warnings per hour, by code", TSWidth).
		WithTarget(PromQuery(
			`sum by (code) (increase(ranker_config_warnings_total[1h]))`,
			"{{code}}", "A",
		))
}
