package ranking

import (
	"fmt"
	"slices"
)

// Preset names.
const (
	PresetDefault     = "default"
	PresetFastSelling = "fast_selling"
	PresetCheapest    = "cheapest"
	PresetBestRated   = "best_rated"
)

var presets = map[string]RankingConfig{
	PresetDefault: {
		RatingWeight:     20,
		SalesSpeedWeight: 20,
		PriceWeight:      20,
		StockWeight:      20,
		SellerWeight:     20,
	},
	PresetFastSelling: {
		SalesSpeedWeight: 50,
		PriceWeight:      30,
		RatingWeight:     20,
	},
	// The price component scores absolute distance from the category average,
	// so this favors typically-priced products as much as cheap ones.
	PresetCheapest: {
		PriceWeight:      60,
		RatingWeight:     20,
		SalesSpeedWeight: 20,
	},
	PresetBestRated: {
		RatingWeight:     60,
		SellerWeight:     20,
		SalesSpeedWeight: 20,
		MinRating:        3.5,
	},
}

// DefaultConfig returns the default preset: equal weights, no thresholds,
// no boosts.
func DefaultConfig() RankingConfig {
	return presets[PresetDefault]
}

// ApplyPreset returns the named built-in preset.
func ApplyPreset(name string) (RankingConfig, error) {
	cfg, ok := presets[name]
	if !ok {
		return RankingConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return cfg, nil
}

// PresetNames returns the built-in preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
