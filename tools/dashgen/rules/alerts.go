package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// storefront-ranker runs.
func AlertRules() PrometheusRule {
	return newRule("ranker-alerts", RuleGroup{
		Name: "ranker-alerts",
		Rules: []Rule{
			{
				Alert: "RankerMissing",
				Expr:  `absent(ranker_ranking_last_success_timestamp_seconds)`,
				For:   "1h",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "No ranking run has ever completed",
					"description": "The ranker textfile metrics are missing; the job may not be scheduled or the textfile path may be wrong.",
				},
			},
			{
				Alert: "RankerStale",
				Expr:  `time() - max(ranker_ranking_last_success_timestamp_seconds) > 86400`,
				For:   "10m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Product ranking is stale",
					"description": "No ranking run has completed in the last 24 hours; storefront order is out of date.",
				},
			},
			{
				Alert: "RankerRunsFailing",
				Expr:  `ranker:ranking_failures:increase1h > 0`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "Ranking runs are failing",
					"description": "At least one ranking run was rejected or aborted in the last hour. Check the ranking settings.",
				},
			},
			{
				Alert: "RankerHighExclusionRatio",
				Expr:  `ranker:exclusion_ratio:1h > 0.5`,
				For:   "30m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Most products are excluded from ranking",
					"description": "More than half of scored products were excluded in the last hour; thresholds may be too strict.",
				},
			},
			{
				Alert: "RankerConfigWarnings",
				Expr:  `sum(increase(ranker_config_warnings_total[1h])) > 0`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "info",
				},
				Annotations: map[string]string{
					"summary":     "Ranking settings produce warnings",
					"description": "The active ranking settings were clamped or have weights that do not sum to 100.",
				},
			},
		},
	})
}
