package main

import "errors"

// KnownMetrics is the set of metric names exported by storefront-ranker
// plus recording rule names referenced in dashboards and alerts.
// Histogram series (_bucket, _sum, _count) resolve to their base name.
var KnownMetrics = map[string]bool{
	// Run metrics.
	"ranker_ranking_runs_total":                     true,
	"ranker_ranking_failures_total":                 true,
	"ranker_ranking_duration_seconds":               true,
	"ranker_ranking_last_success_timestamp_seconds": true,
	"ranker_ranking_batch_size":                     true,

	// Product metrics.
	"ranker_products_scored_total": true,
	"ranker_exclusions_total":      true,
	"ranker_boosts_applied_total":  true,
	"ranker_score_distribution":    true,

	// Configuration metrics.
	"ranker_config_rejected_total": true,
	"ranker_config_warnings_total": true,

	// Recording rules.
	"ranker:products_scored:increase1h":  true,
	"ranker:exclusions:increase1h":       true,
	"ranker:exclusion_ratio:1h":          true,
	"ranker:ranking_failures:increase1h": true,
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
