// Package ranking implements the storefront product ranking engine: a
// configurable weighted-scoring system that orders products for display,
// excludes products below minimum-quality thresholds, and applies additive
// promotional boosts.
//
// Everything in this package is a pure function of its inputs. A
// RankingConfig is a value; edits return a new value.
package ranking

import "math"

// Upper bounds for configuration fields.
const (
	MaxPercent = 100.0
	MaxRating  = 5.0
)

// RankingConfig holds the active weights, thresholds, and boost percentages.
// The JSON keys match the flat object persisted by the admin settings screen.
type RankingConfig struct {
	// Weights, in percentage points.
	RatingWeight     float64 `json:"ratingWeight"     yaml:"ratingWeight"`
	SalesSpeedWeight float64 `json:"salesSpeedWeight" yaml:"salesSpeedWeight"`
	PriceWeight      float64 `json:"priceWeight"      yaml:"priceWeight"`
	StockWeight      float64 `json:"stockWeight"      yaml:"stockWeight"`
	SellerWeight     float64 `json:"sellerWeight"     yaml:"sellerWeight"`

	// Hard exclusion thresholds.
	MinRating         float64 `json:"minRating"         yaml:"minRating"`
	MinSalesPerDay    float64 `json:"minSalesPerDay"    yaml:"minSalesPerDay"`
	MaxPriceDeviation float64 `json:"maxPriceDeviation" yaml:"maxPriceDeviation"`
	MinStockLevel     float64 `json:"minStockLevel"     yaml:"minStockLevel"`

	// Additive boosts, in score points.
	NewProductBoost float64 `json:"newProductBoost" yaml:"newProductBoost"`
	TrendingBoost   float64 `json:"trendingBoost"   yaml:"trendingBoost"`
	SeasonalBoost   float64 `json:"seasonalBoost"   yaml:"seasonalBoost"`
}

// WeightSum returns the total of the five criterion weights.
func (c RankingConfig) WeightSum() float64 {
	return c.RatingWeight + c.SalesSpeedWeight + c.PriceWeight + c.StockWeight + c.SellerWeight
}

// Clamp returns a copy with every field forced into its valid range.
// Non-finite values become 0.
func (c RankingConfig) Clamp() RankingConfig {
	c.RatingWeight = clampField(c.RatingWeight, MaxPercent)
	c.SalesSpeedWeight = clampField(c.SalesSpeedWeight, MaxPercent)
	c.PriceWeight = clampField(c.PriceWeight, MaxPercent)
	c.StockWeight = clampField(c.StockWeight, MaxPercent)
	c.SellerWeight = clampField(c.SellerWeight, MaxPercent)

	c.MinRating = clampField(c.MinRating, MaxRating)
	c.MinSalesPerDay = clampField(c.MinSalesPerDay, math.MaxFloat64)
	c.MaxPriceDeviation = clampField(c.MaxPriceDeviation, MaxPercent)
	c.MinStockLevel = clampField(c.MinStockLevel, math.MaxFloat64)

	c.NewProductBoost = clampField(c.NewProductBoost, MaxPercent)
	c.TrendingBoost = clampField(c.TrendingBoost, MaxPercent)
	c.SeasonalBoost = clampField(c.SeasonalBoost, MaxPercent)
	return c
}

// field pairs a JSON key with its value and upper bound.
type field struct {
	name  string
	value float64
	upper float64
	// hard marks fields where exceeding upper is a fatal error rather than
	// a clamp.
	hard bool
}

func (c RankingConfig) fields() []field {
	return []field{
		{name: "ratingWeight", value: c.RatingWeight, upper: MaxPercent},
		{name: "salesSpeedWeight", value: c.SalesSpeedWeight, upper: MaxPercent},
		{name: "priceWeight", value: c.PriceWeight, upper: MaxPercent},
		{name: "stockWeight", value: c.StockWeight, upper: MaxPercent},
		{name: "sellerWeight", value: c.SellerWeight, upper: MaxPercent},
		{name: "minRating", value: c.MinRating, upper: MaxRating, hard: true},
		{name: "minSalesPerDay", value: c.MinSalesPerDay, upper: math.Inf(1)},
		{name: "maxPriceDeviation", value: c.MaxPriceDeviation, upper: MaxPercent},
		{name: "minStockLevel", value: c.MinStockLevel, upper: math.Inf(1)},
		{name: "newProductBoost", value: c.NewProductBoost, upper: MaxPercent},
		{name: "trendingBoost", value: c.TrendingBoost, upper: MaxPercent},
		{name: "seasonalBoost", value: c.SeasonalBoost, upper: MaxPercent},
	}
}

func clampField(v, upper float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return clamp(v, 0, upper)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
