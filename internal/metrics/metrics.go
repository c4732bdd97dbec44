// Package metrics defines Prometheus metrics for storefront-ranker.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ranker"

// Ranking run metrics.
var (
	RankingRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ranking_runs_total",
		Help:      "Total number of completed ranking runs.",
	})

	RankingFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ranking_failures_total",
		Help:      "Total number of ranking runs rejected or aborted.",
	})

	RankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ranking_duration_seconds",
		Help:      "Duration of ranking runs in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	})

	RankingLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ranking_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last completed ranking run.",
	})

	RankingBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ranking_batch_size",
		Help:      "Number of products per ranking run.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
)

// Per-product scoring metrics.
var (
	ProductsScoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_scored_total",
		Help:      "Total number of products scored, including excluded products.",
	})

	ExclusionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exclusions_total",
		Help:      "Total number of products excluded from ranking, by reason.",
	}, []string{"reason"})

	BoostsAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boosts_applied_total",
		Help:      "Total number of boosts applied, by boost name.",
	}, []string{"boost"})

	ScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "score_distribution",
		Help:      "Distribution of final scores for non-excluded products.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0, 10, 20, ..., 100
	})
)

// Configuration metrics.
var (
	ConfigRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_rejected_total",
		Help:      "Total number of ranking configurations rejected by validation.",
	})

	ConfigWarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_warnings_total",
		Help:      "Total number of non-fatal configuration warnings, by code.",
	}, []string{"code"})
)

// WriteTextfile writes every registered metric to path in the text
// exposition format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
