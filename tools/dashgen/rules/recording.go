package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed hourly
// aggregates used by dashboards and alert rules. Ranking runs are batch
// jobs, so windows are an hour rather than minutes.
func RecordingRules() PrometheusRule {
	return newRule("ranker-recording-rules", RuleGroup{
		Name:     "ranker-recording",
		Interval: "1m",
		Rules: []Rule{
			{
				Record: "ranker:products_scored:increase1h",
				Expr:   `sum(increase(ranker_products_scored_total[1h]))`,
			},
			{
				Record: "ranker:exclusions:increase1h",
				Expr:   `sum(increase(ranker_exclusions_total[1h]))`,
			},
			{
				Record: "ranker:exclusion_ratio:1h",
				Expr:   `ranker:exclusions:increase1h / ranker:products_scored:increase1h`,
			},
			{
				Record: "ranker:ranking_failures:increase1h",
				Expr:   `sum(increase(ranker_ranking_failures_total[1h]))`,
			},
		},
	})
}
