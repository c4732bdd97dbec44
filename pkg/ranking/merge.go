package ranking

// Overrides is a partial RankingConfig. Nil fields are absent and leave the
// base value untouched. A full settings object decodes into Overrides with
// every field set.
type Overrides struct {
	RatingWeight     *float64 `json:"ratingWeight,omitempty"     yaml:"ratingWeight,omitempty"`
	SalesSpeedWeight *float64 `json:"salesSpeedWeight,omitempty" yaml:"salesSpeedWeight,omitempty"`
	PriceWeight      *float64 `json:"priceWeight,omitempty"      yaml:"priceWeight,omitempty"`
	StockWeight      *float64 `json:"stockWeight,omitempty"      yaml:"stockWeight,omitempty"`
	SellerWeight     *float64 `json:"sellerWeight,omitempty"     yaml:"sellerWeight,omitempty"`

	MinRating         *float64 `json:"minRating,omitempty"         yaml:"minRating,omitempty"`
	MinSalesPerDay    *float64 `json:"minSalesPerDay,omitempty"    yaml:"minSalesPerDay,omitempty"`
	MaxPriceDeviation *float64 `json:"maxPriceDeviation,omitempty" yaml:"maxPriceDeviation,omitempty"`
	MinStockLevel     *float64 `json:"minStockLevel,omitempty"     yaml:"minStockLevel,omitempty"`

	NewProductBoost *float64 `json:"newProductBoost,omitempty" yaml:"newProductBoost,omitempty"`
	TrendingBoost   *float64 `json:"trendingBoost,omitempty"   yaml:"trendingBoost,omitempty"`
	SeasonalBoost   *float64 `json:"seasonalBoost,omitempty"   yaml:"seasonalBoost,omitempty"`
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

// Merge returns base with every field present in o replaced. Neither input
// is modified.
func Merge(base RankingConfig, o Overrides) RankingConfig {
	out := base
	set(&out.RatingWeight, o.RatingWeight)
	set(&out.SalesSpeedWeight, o.SalesSpeedWeight)
	set(&out.PriceWeight, o.PriceWeight)
	set(&out.StockWeight, o.StockWeight)
	set(&out.SellerWeight, o.SellerWeight)
	set(&out.MinRating, o.MinRating)
	set(&out.MinSalesPerDay, o.MinSalesPerDay)
	set(&out.MaxPriceDeviation, o.MaxPriceDeviation)
	set(&out.MinStockLevel, o.MinStockLevel)
	set(&out.NewProductBoost, o.NewProductBoost)
	set(&out.TrendingBoost, o.TrendingBoost)
	set(&out.SeasonalBoost, o.SeasonalBoost)
	return out
}

func set(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}
