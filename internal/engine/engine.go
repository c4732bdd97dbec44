// Package engine runs ranking batches: it validates the ranking
// configuration, scores products across a bounded worker group, orders the
// result, and records metrics and traces for the run.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/storefront-ranker/internal/metrics"
	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

const (
	defaultChunkSize = 256
	tracerName       = "github.com/donaldgifford/storefront-ranker/internal/engine"
)

// Engine ranks product batches. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	log    *slog.Logger
	tracer trace.Tracer
	now    func() time.Time

	workers   int
	chunkSize int
}

// NewEngine creates a new Engine.
func NewEngine(opts ...EngineOption) *Engine {
	eng := &Engine{
		log:       slog.Default(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		workers:   runtime.GOMAXPROCS(0),
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(eng)
	}
	eng.workers = max(eng.workers, 1)
	eng.chunkSize = max(eng.chunkSize, 1)
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithWorkers sets how many chunks are scored concurrently.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithChunkSize sets how many products each worker scores per task.
func WithChunkSize(n int) EngineOption {
	return func(e *Engine) {
		e.chunkSize = n
	}
}

// WithClock sets the time source used for the new product boost.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// Result is the outcome of one ranking run.
type Result struct {
	RunID    string                  `json:"runId"`
	RankedAt time.Time               `json:"rankedAt"`
	Products []ranking.ScoredProduct `json:"products"`
	Warnings []ranking.Warning       `json:"warnings,omitempty"`
	Excluded int                     `json:"excluded"`
}

// Rank validates cfg and ranks batch. A configuration that fails
// validation is returned as an error before any product is scored.
// Per-product problems never fail the run; they show up as exclusions.
func (eng *Engine) Rank(
	ctx context.Context,
	cfg ranking.RankingConfig,
	batch []ranking.ProductSnapshot,
) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := eng.log.With("run_id", runID)

	ctx, span := eng.tracer.Start(ctx, "ranking.run", trace.WithAttributes(
		attribute.String("ranking.run_id", runID),
		attribute.Int("ranking.batch_size", len(batch)),
	))
	defer span.End()

	clean, validation, err := ranking.NewConfig(cfg)
	recordWarnings(validation.Warnings)
	if err != nil {
		metrics.ConfigRejectedTotal.Inc()
		metrics.RankingFailuresTotal.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid ranking config")
		log.Warn("ranking config rejected", "error", err)
		return nil, err
	}
	for _, w := range validation.Warnings {
		log.Warn("ranking config warning", "code", w.Code, "field", w.Field, "message", w.Message)
	}

	rankedAt := eng.now()
	products, err := eng.scoreAll(ctx, clean, batch, rankedAt)
	if err != nil {
		metrics.RankingFailuresTotal.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring aborted")
		return nil, fmt.Errorf("scoring batch: %w", err)
	}
	ranking.SortScored(products)

	excluded := recordProducts(products)
	metrics.RankingRunsTotal.Inc()
	metrics.RankingBatchSize.Observe(float64(len(batch)))
	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	metrics.RankingLastSuccess.SetToCurrentTime()

	span.SetAttributes(attribute.Int("ranking.excluded", excluded))
	log.Info("ranking complete",
		"products", len(products),
		"excluded", excluded,
		"warnings", len(validation.Warnings),
		"duration", time.Since(start),
	)

	return &Result{
		RunID:    runID,
		RankedAt: rankedAt,
		Products: products,
		Warnings: validation.Warnings,
		Excluded: excluded,
	}, nil
}

func recordWarnings(warnings []ranking.Warning) {
	for _, w := range warnings {
		metrics.ConfigWarningsTotal.WithLabelValues(w.Code).Inc()
	}
}
