package ranking

import (
	"math"
	"slices"
	"time"
)

// NewProductWindow is how long after creation a product earns the new
// product boost.
const NewProductWindow = 30 * 24 * time.Hour

// ExclusionReason explains why a product was removed from ranked display.
type ExclusionReason string

// Exclusion reasons.
const (
	ExclusionInvalidData            ExclusionReason = "invalid_data"
	ExclusionBelowMinRating         ExclusionReason = "below_min_rating"
	ExclusionBelowMinSales          ExclusionReason = "below_min_sales"
	ExclusionBelowMinStock          ExclusionReason = "below_min_stock"
	ExclusionPriceDeviationExceeded ExclusionReason = "price_deviation_exceeded"
)

// Boost names recorded in ScoredProduct.AppliedBoosts.
const (
	BoostNewProduct = "new_product"
	BoostTrending   = "trending"
	BoostSeasonal   = "seasonal"
)

// ProductSnapshot holds the catalog and analytics fields needed for ranking.
// It is built fresh for each run and never modified by the engine.
type ProductSnapshot struct {
	ID                   string    `json:"id"`
	Rating               float64   `json:"rating"`
	ReviewCount          int       `json:"reviewCount"`
	SalesPerDay          float64   `json:"salesPerDay"`
	Price                float64   `json:"price"`
	CategoryAveragePrice float64   `json:"categoryAveragePrice"`
	StockQuantity        int       `json:"stockQuantity"`
	SellerScore          float64   `json:"sellerScore"`
	CreatedAt            time.Time `json:"createdAt"`
	IsTrending           bool      `json:"isTrending"`
	IsSeasonal           bool      `json:"isSeasonal"`

	invalid []string
}

// MarkInvalid records fields that were missing or malformed when the
// snapshot was decoded. Zero values cannot tell "absent" from "0", so
// decoders mark absent fields here and the product is excluded as
// invalid_data.
func (p *ProductSnapshot) MarkInvalid(fields ...string) {
	p.invalid = append(p.invalid, fields...)
}

// InvalidFields returns the fields recorded by MarkInvalid.
func (p *ProductSnapshot) InvalidFields() []string {
	return slices.Clone(p.invalid)
}

// Components shows the per-criterion scores on a 0-100 scale.
type Components struct {
	Rating     float64 `json:"rating"`
	SalesSpeed float64 `json:"salesSpeed"`
	Price      float64 `json:"price"`
	Stock      float64 `json:"stock"`
	Seller     float64 `json:"seller"`
}

// ScoredProduct is the engine's output for one product.
type ScoredProduct struct {
	ProductID   string `json:"productId"`
	ReviewCount int    `json:"reviewCount"`
	// WeightedScore is the rescaled weighted sum before boosts.
	WeightedScore float64 `json:"weightedScore"`
	// RawScore is WeightedScore plus applied boosts and may exceed 100.
	RawScore        float64          `json:"rawScore"`
	FinalScore      float64          `json:"finalScore"`
	Excluded        bool             `json:"excluded"`
	ExclusionReason *ExclusionReason `json:"exclusionReason"`
	AppliedBoosts   []string         `json:"appliedBoosts"`
	Components      Components       `json:"components"`
	// InvalidFields lists the fields that were missing or malformed at
	// decode time.
	InvalidFields []string `json:"invalidFields,omitempty"`
}

// References are the batch-wide maxima used for relative normalization.
type References struct {
	SalesPerDay   float64
	StockQuantity int
}

// ComputeReferences scans the batch once for the maximum salesPerDay and
// stockQuantity among products with valid data. Sales speed and stock are
// scored relative to these, so the same product can score differently in
// a different batch.
func ComputeReferences(batch []ProductSnapshot) References {
	var refs References
	for i := range batch {
		p := &batch[i]
		if !validSnapshot(p) {
			continue
		}
		refs.SalesPerDay = math.Max(refs.SalesPerDay, p.SalesPerDay)
		refs.StockQuantity = max(refs.StockQuantity, p.StockQuantity)
	}
	return refs
}

// ScoreProduct computes the score for a single product. It reads only its
// arguments, so products can be scored concurrently once refs is known.
// cfg is clamped before use.
func ScoreProduct(cfg RankingConfig, refs References, p *ProductSnapshot, now time.Time) ScoredProduct {
	cfg = cfg.Clamp()
	out := ScoredProduct{
		ProductID:     p.ID,
		ReviewCount:   p.ReviewCount,
		AppliedBoosts: []string{},
	}

	if reason, excluded := exclusion(cfg, p); excluded {
		out.Excluded = true
		out.ExclusionReason = &reason
		out.InvalidFields = p.InvalidFields()
		return out
	}

	out.Components = Components{
		Rating:     ratingComponent(p.Rating),
		SalesSpeed: relativeComponent(p.SalesPerDay, refs.SalesPerDay),
		Price:      priceComponent(p.Price, p.CategoryAveragePrice),
		Stock:      relativeComponent(float64(p.StockQuantity), float64(refs.StockQuantity)),
		Seller:     sellerComponent(p.SellerScore),
	}
	out.WeightedScore = weighted(cfg, out.Components)

	out.RawScore = out.WeightedScore
	if cfg.NewProductBoost > 0 && isNewProduct(p.CreatedAt, now) {
		out.RawScore += cfg.NewProductBoost
		out.AppliedBoosts = append(out.AppliedBoosts, BoostNewProduct)
	}
	if cfg.TrendingBoost > 0 && p.IsTrending {
		out.RawScore += cfg.TrendingBoost
		out.AppliedBoosts = append(out.AppliedBoosts, BoostTrending)
	}
	if cfg.SeasonalBoost > 0 && p.IsSeasonal {
		out.RawScore += cfg.SeasonalBoost
		out.AppliedBoosts = append(out.AppliedBoosts, BoostSeasonal)
	}

	out.FinalScore = clamp(out.RawScore, 0, MaxPercent)
	return out
}

// Rank scores every product in batch and returns them in display order.
// Excluded products are included with a zero score. The output always has
// the same length as batch. Out-of-range config values are clamped, as in
// ScoreProduct; use NewConfig to have them reported.
func Rank(cfg RankingConfig, batch []ProductSnapshot, now time.Time) []ScoredProduct {
	refs := ComputeReferences(batch)
	out := make([]ScoredProduct, len(batch))
	for i := range batch {
		out[i] = ScoreProduct(cfg, refs, &batch[i], now)
	}
	SortScored(out)
	return out
}

// Eligible returns the products that were not excluded, preserving order.
func Eligible(scored []ScoredProduct) []ScoredProduct {
	out := make([]ScoredProduct, 0, len(scored))
	for i := range scored {
		if !scored[i].Excluded {
			out = append(out, scored[i])
		}
	}
	return out
}

// exclusion applies the data check and then the thresholds in a fixed order.
func exclusion(cfg RankingConfig, p *ProductSnapshot) (ExclusionReason, bool) {
	if !validSnapshot(p) {
		return ExclusionInvalidData, true
	}
	switch {
	case p.Rating < cfg.MinRating:
		return ExclusionBelowMinRating, true
	case p.SalesPerDay < cfg.MinSalesPerDay:
		return ExclusionBelowMinSales, true
	case float64(p.StockQuantity) < cfg.MinStockLevel:
		return ExclusionBelowMinStock, true
	// A zero maxPriceDeviation disables the check, like the other thresholds.
	case cfg.MaxPriceDeviation > 0 && p.CategoryAveragePrice > 0 &&
		priceDeviationPercent(p.Price, p.CategoryAveragePrice) > cfg.MaxPriceDeviation:
		return ExclusionPriceDeviationExceeded, true
	}
	return "", false
}

// validSnapshot rejects products whose numbers cannot be scored.
func validSnapshot(p *ProductSnapshot) bool {
	if p.ID == "" || len(p.invalid) > 0 {
		return false
	}
	for _, v := range []float64{p.Rating, p.SalesPerDay, p.Price, p.CategoryAveragePrice, p.SellerScore} {
		if !isFinite(v) || v < 0 {
			return false
		}
	}
	return p.Rating <= MaxRating &&
		p.SellerScore <= 1 &&
		p.ReviewCount >= 0 &&
		p.StockQuantity >= 0
}

func isNewProduct(createdAt, now time.Time) bool {
	if createdAt.IsZero() {
		return false
	}
	age := now.Sub(createdAt)
	return age >= 0 && age <= NewProductWindow
}
