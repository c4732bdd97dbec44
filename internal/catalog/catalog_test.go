package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

func TestDecodeSnapshots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLen   int
		wantErr   string
		checkFunc func(t *testing.T, batch []ranking.ProductSnapshot)
	}{
		{
			name: "full snapshot",
			input: `[{
				"id": "sku-1",
				"rating": 4.6,
				"reviewCount": 312,
				"salesPerDay": 12.5,
				"price": 49.99,
				"categoryAveragePrice": 55,
				"stockQuantity": 40,
				"sellerScore": 0.92,
				"createdAt": "2026-02-20T08:00:00Z",
				"isTrending": true,
				"isSeasonal": false
			}]`,
			wantLen: 1,
			checkFunc: func(t *testing.T, batch []ranking.ProductSnapshot) {
				t.Helper()
				p := batch[0]
				assert.Equal(t, "sku-1", p.ID)
				assert.Equal(t, 4.6, p.Rating)
				assert.Equal(t, 312, p.ReviewCount)
				assert.Equal(t, 12.5, p.SalesPerDay)
				assert.Equal(t, 49.99, p.Price)
				assert.Equal(t, 55.0, p.CategoryAveragePrice)
				assert.Equal(t, 40, p.StockQuantity)
				assert.Equal(t, 0.92, p.SellerScore)
				assert.Equal(t, time.Date(2026, time.February, 20, 8, 0, 0, 0, time.UTC), p.CreatedAt.UTC())
				assert.True(t, p.IsTrending)
				assert.False(t, p.IsSeasonal)
				assert.Empty(t, p.InvalidFields())
			},
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantLen: 0,
		},
		{
			name:    "empty input",
			input:   ``,
			wantLen: 0,
		},
		{
			name:    "null",
			input:   `null`,
			wantLen: 0,
		},
		{
			name:    "unknown field rejected",
			input:   `[{"id": "sku-1", "ratting": 4}]`,
			wantErr: "decoding product snapshots",
		},
		{
			name:    "object instead of array",
			input:   `{"id": "sku-1"}`,
			wantErr: "decoding product snapshots",
		},
		{
			name:    "malformed json",
			input:   `[{"id": "sku-1",`,
			wantErr: "decoding product snapshots",
		},
		{
			name:    "out of range values decode",
			input:   `[{"id": "", "rating": 9, "stockQuantity": -3, "sellerScore": 4}]`,
			wantLen: 1,
			checkFunc: func(t *testing.T, batch []ranking.ProductSnapshot) {
				t.Helper()
				assert.Equal(t, 9.0, batch[0].Rating)
				assert.Equal(t, -3, batch[0].StockQuantity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			batch, err := DecodeSnapshots(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "decoding product snapshots")
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, batch)
			require.Len(t, batch, tt.wantLen)
			if tt.checkFunc != nil {
				tt.checkFunc(t, batch)
			}
		})
	}
}

func TestDecodeSnapshots_SchemaError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "unknown key", input: `[{"id": "a", "ratting": 4}]`, wantErr: "ratting"},
		{name: "object instead of array", input: `{"id": "a"}`, wantErr: "array"},
		{name: "item is not an object", input: `[{"id": "a"}, 7]`, wantErr: "object"},
		{name: "null item", input: `[null]`, wantErr: "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeSnapshots(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchema)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeSnapshots_ProductFaults(t *testing.T) {
	t.Parallel()

	const complete = `"rating": 4, "reviewCount": 10, "salesPerDay": 2, "price": 20,
		"stockQuantity": 5, "sellerScore": 0.8`

	tests := []struct {
		name        string
		item        string
		wantInvalid []string
	}{
		{
			name:        "complete product",
			item:        `{"id": "p", ` + complete + `}`,
			wantInvalid: nil,
		},
		{
			name:        "optional fields absent or null",
			item:        `{"id": "p", ` + complete + `, "categoryAveragePrice": null, "createdAt": null, "isTrending": null}`,
			wantInvalid: nil,
		},
		{
			name:        "missing numeric fields",
			item:        `{"id": "p", "rating": 4}`,
			wantInvalid: []string{"price", "reviewCount", "salesPerDay", "sellerScore", "stockQuantity"},
		},
		{
			name:        "explicit null",
			item:        `{"id": "p", "rating": null, "reviewCount": 10, "salesPerDay": 2, "price": 20, "stockQuantity": 5, "sellerScore": 0.8}`,
			wantInvalid: []string{"rating"},
		},
		{
			name:        "wrongly typed field",
			item:        `{"id": "p", "rating": "n/a", "reviewCount": 10, "salesPerDay": 2, "price": 20, "stockQuantity": 5, "sellerScore": 0.8}`,
			wantInvalid: []string{"rating"},
		},
		{
			name:        "fractional review count",
			item:        `{"id": "p", "rating": 4, "reviewCount": 2.5, "salesPerDay": 2, "price": 20, "stockQuantity": 5, "sellerScore": 0.8}`,
			wantInvalid: []string{"reviewCount"},
		},
		{
			name:        "bad timestamp",
			item:        `{"id": "p", ` + complete + `, "createdAt": "last tuesday"}`,
			wantInvalid: []string{"createdAt"},
		},
		{
			name:        "numeric id",
			item:        `{"id": 7, ` + complete + `}`,
			wantInvalid: []string{"id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := `[{"id": "ok", ` + complete + `}, ` + tt.item + `]`
			batch, err := DecodeSnapshots(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, batch, 2)

			assert.Empty(t, batch[0].InvalidFields())
			assert.Equal(t, tt.wantInvalid, batch[1].InvalidFields())
		})
	}
}

func TestDecodeSnapshots_FaultyProductExcluded(t *testing.T) {
	t.Parallel()

	batch, err := DecodeSnapshots(strings.NewReader(`[
		{"id": "full", "rating": 4.5, "reviewCount": 40, "salesPerDay": 3, "price": 20,
		 "categoryAveragePrice": 20, "stockQuantity": 8, "sellerScore": 0.9},
		{"id": "missing", "rating": 4},
		{"id": "null", "rating": null, "reviewCount": 1, "salesPerDay": 1, "price": 20,
		 "stockQuantity": 1, "sellerScore": 0.5},
		{"id": "typed", "rating": "n/a", "reviewCount": 1, "salesPerDay": 1, "price": 20,
		 "stockQuantity": 1, "sellerScore": 0.5}
	]`))
	require.NoError(t, err)

	got := ranking.Rank(ranking.DefaultConfig(), batch, time.Now())
	require.Len(t, got, 4)

	assert.Equal(t, "full", got[0].ProductID)
	assert.False(t, got[0].Excluded)
	assert.Positive(t, got[0].FinalScore)

	for _, s := range got[1:] {
		assert.True(t, s.Excluded, s.ProductID)
		require.NotNil(t, s.ExclusionReason, s.ProductID)
		assert.Equal(t, ranking.ExclusionInvalidData, *s.ExclusionReason, s.ProductID)
		assert.Zero(t, s.FinalScore, s.ProductID)
		assert.NotEmpty(t, s.InvalidFields, s.ProductID)
	}
}

func TestDecodeSettings(t *testing.T) {
	t.Parallel()

	t.Run("admin screen export", func(t *testing.T) {
		t.Parallel()

		// Shape written by the settings screen, including UI-only keys.
		input := `{
			"ratingWeight": 30,
			"salesSpeedWeight": 25,
			"priceWeight": 20,
			"stockWeight": 15,
			"sellerWeight": 10,
			"minRating": 3.5,
			"minSalesPerDay": 1,
			"maxPriceDeviation": 40,
			"minStockLevel": 2,
			"newProductBoost": 10,
			"trendingBoost": 15,
			"seasonalBoost": 5,
			"activePreset": "custom"
		}`

		o, err := DecodeSettings(strings.NewReader(input))
		require.NoError(t, err)

		cfg := ranking.Merge(ranking.RankingConfig{}, o)
		assert.Equal(t, ranking.RankingConfig{
			RatingWeight:      30,
			SalesSpeedWeight:  25,
			PriceWeight:       20,
			StockWeight:       15,
			SellerWeight:      10,
			MinRating:         3.5,
			MinSalesPerDay:    1,
			MaxPriceDeviation: 40,
			MinStockLevel:     2,
			NewProductBoost:   10,
			TrendingBoost:     15,
			SeasonalBoost:     5,
		}, cfg)
	})

	t.Run("partial settings keep preset values", func(t *testing.T) {
		t.Parallel()

		o, err := DecodeSettings(strings.NewReader(`{"priceWeight": 0, "trendingBoost": 12}`))
		require.NoError(t, err)

		cfg := ranking.Merge(ranking.DefaultConfig(), o)
		assert.Equal(t, 0.0, cfg.PriceWeight)
		assert.Equal(t, 12.0, cfg.TrendingBoost)
		assert.Equal(t, 20.0, cfg.RatingWeight)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeSettings(strings.NewReader(`{"ratingWeight": "high"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding ranking settings")
	})
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	products := filepath.Join(dir, "products.json")
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(products, []byte(`[{"id":"a"},{"id":"b"}]`), 0o600))
	require.NoError(t, os.WriteFile(settings, []byte(`{"minStockLevel":5}`), 0o600))

	batch, err := LoadSnapshots(products)
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	o, err := LoadSettings(settings)
	require.NoError(t, err)
	require.NotNil(t, o.MinStockLevel)
	assert.Equal(t, 5.0, *o.MinStockLevel)

	_, err = LoadSnapshots(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening products file")

	_, err = LoadSettings(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening settings file")
}
