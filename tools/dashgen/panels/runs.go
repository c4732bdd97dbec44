package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LastRun returns a stat panel showing time since the last completed ranking run.
func LastRun() *stat.PanelBuilder {
	return newStat("Last Run", "Time since the last completed ranking run", StatWidth, StatHeight).
		WithTarget(PromQuery(
			`time() - max(ranker_ranking_last_success_timestamp_seconds)`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(Day, 2*Day))
}

// Runs24h returns a stat panel showing completed runs in the past 24 hours.
// Zero runs is red.
func Runs24h() *stat.PanelBuilder {
	return newStat("Runs (24h)", "Completed ranking runs in the last 24 hours", StatWidth, StatHeight).
		WithTarget(PromQuery(`sum(increase(ranker_ranking_runs_total[24h]))`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		TextMode(common.BigValueTextModeValue)
}

// Failures24h returns a stat panel showing rejected or aborted runs in the
// past 24 hours.
func Failures24h() *stat.PanelBuilder {
	return newStat("Failed Runs (24h)", "Ranking runs rejected for invalid configuration or aborted", StatWidth, StatHeight).
		WithTarget(PromQuery(`sum(increase(ranker_ranking_failures_total[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		GraphMode(common.BigValueGraphModeArea)
}

// ExclusionRatio returns a gauge panel showing the share of scored products
// that were excluded over the last hour.
func ExclusionRatio() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Excluded %").
		Description("Share of scored products excluded by thresholds or invalid data (1h)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`ranker:exclusion_ratio:1h * 100`, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(30, 50)).
		ColorScheme(ColorSchemeThresholds())
}

// RunDuration returns a timeseries panel showing p50 and p95 run durations.
func RunDuration() *timeseries.PanelBuilder {
	return newTimeseries("Run Duration", "Ranking run duration percentiles", ThirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(ranker_ranking_duration_seconds_bucket[1h])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(ranker_ranking_duration_seconds_bucket[1h])) by (le))`,
			"p95", "B",
		)).
		Unit("s").
		Legend(TableLegend("mean", "max"))
}

// BatchSize returns a timeseries panel showing the median batch size.
func BatchSize() *timeseries.PanelBuilder {
	return newTimeseries("Batch Size (p50)", "Median number of products per ranking run", ThirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(ranker_ranking_batch_size_bucket[1h])) by (le))`,
			"products", "A",
		))
}

// ScoredProducts returns a timeseries panel comparing products scored and
// products excluded per hour.
func ScoredProducts() *timeseries.PanelBuilder {
	return newTimeseries("Products Scored / h", "Products scored over the trailing hour, excluded ones included", ThirdWidth).
		WithTarget(PromQuery(`ranker:products_scored:increase1h`, "scored", "A")).
		WithTarget(PromQuery(`ranker:exclusions:increase1h`, "excluded", "B"))
}
