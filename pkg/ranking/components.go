package ranking

import "math"

// neutralPriceScore is used when a product has no category average to
// compare against.
const neutralPriceScore = 50

// ratingComponent maps a 0-5 star rating to 0-100.
func ratingComponent(rating float64) float64 {
	return rating / MaxRating * 100
}

// relativeComponent scores val against the batch maximum ref. A zero
// reference scores every product 0.
func relativeComponent(val, ref float64) float64 {
	if ref <= 0 {
		return 0
	}
	return math.Min(100, val/ref*100)
}

// priceComponent rewards proximity to the category average. Deviation is
// absolute, so a price 20% below average scores the same as 20% above.
func priceComponent(price, categoryAvg float64) float64 {
	if categoryAvg <= 0 {
		return neutralPriceScore
	}
	return math.Max(0, 100-priceDeviationPercent(price, categoryAvg))
}

func priceDeviationPercent(price, categoryAvg float64) float64 {
	return math.Abs(price-categoryAvg) / categoryAvg * 100
}

// sellerComponent maps an upstream 0-1 seller quality score to 0-100.
func sellerComponent(score float64) float64 {
	return score * 100
}

// weighted combines components by the configured weights, rescaled so the
// result stays on a 0-100 scale whatever the weights sum to.
func weighted(cfg RankingConfig, c Components) float64 {
	sum := cfg.WeightSum()
	if sum <= 0 {
		return 0
	}
	total := c.Rating*cfg.RatingWeight +
		c.SalesSpeed*cfg.SalesSpeedWeight +
		c.Price*cfg.PriceWeight +
		c.Stock*cfg.StockWeight +
		c.Seller*cfg.SellerWeight
	return total / sum
}
