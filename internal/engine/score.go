package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/storefront-ranker/internal/metrics"
	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

// scoreAll scores batch in chunks across the worker group. Batch references
// are computed once up front; after that each chunk reads only its own
// products and writes only its own slice indexes.
func (eng *Engine) scoreAll(
	ctx context.Context,
	cfg ranking.RankingConfig,
	batch []ranking.ProductSnapshot,
	now time.Time,
) ([]ranking.ScoredProduct, error) {
	refs := ranking.ComputeReferences(batch)
	out := make([]ranking.ScoredProduct, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(eng.workers)

	for start := 0; start < len(batch); start += eng.chunkSize {
		if ctx.Err() != nil {
			break
		}
		end := min(start+eng.chunkSize, len(batch))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				out[i] = ranking.ScoreProduct(cfg, refs, &batch[i], now)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// recordProducts updates per-product metrics and returns the number of
// excluded products.
func recordProducts(products []ranking.ScoredProduct) int {
	excluded := 0
	metrics.ProductsScoredTotal.Add(float64(len(products)))

	for i := range products {
		p := &products[i]
		if p.Excluded {
			excluded++
			if p.ExclusionReason != nil {
				metrics.ExclusionsTotal.WithLabelValues(string(*p.ExclusionReason)).Inc()
			}
			continue
		}
		for _, b := range p.AppliedBoosts {
			metrics.BoostsAppliedTotal.WithLabelValues(b).Inc()
		}
		metrics.ScoreDistribution.Observe(p.FinalScore)
	}

	return excluded
}
