// Package catalog decodes ranking inputs: product snapshot batches and the
// flat settings object saved by the admin settings screen.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

// ErrSchema is returned when a snapshot batch is not an array of objects
// with known keys. Faults inside a single product do not fail the batch;
// that product is marked invalid and excluded by the engine.
var ErrSchema = errors.New("snapshot schema violation")

//go:embed snapshot.schema.json
var batchSchemaJSON string

//go:embed product.schema.json
var productSchemaJSON string

var (
	batchSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewStringLoader(batchSchemaJSON))
	})
	productSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewStringLoader(productSchemaJSON))
	})
)

// snapshotWire mirrors ranking.ProductSnapshot with pointer fields so absent
// and null values can be told apart from zero.
type snapshotWire struct {
	ID                   *string  `json:"id"`
	Rating               *float64 `json:"rating"`
	ReviewCount          *int     `json:"reviewCount"`
	SalesPerDay          *float64 `json:"salesPerDay"`
	Price                *float64 `json:"price"`
	CategoryAveragePrice *float64 `json:"categoryAveragePrice"`
	StockQuantity        *int     `json:"stockQuantity"`
	SellerScore          *float64 `json:"sellerScore"`
	CreatedAt            *string  `json:"createdAt"`
	IsTrending           *bool    `json:"isTrending"`
	IsSeasonal           *bool    `json:"isSeasonal"`
}

// DecodeSnapshots reads a JSON array of product snapshots. The document must
// be an array of objects with known keys, or ErrSchema is returned with the
// offending key named. Each product is then checked on its own: a missing,
// null or wrongly typed field marks that product invalid (see
// ranking.ProductSnapshot.MarkInvalid) and the rest of the batch is kept.
// Value ranges are left to the engine.
func DecodeSnapshots(r io.Reader) ([]ranking.ProductSnapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading product snapshots: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []ranking.ProductSnapshot{}, nil
	}

	if err := checkBatch(data); err != nil {
		return nil, fmt.Errorf("decoding product snapshots: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding product snapshots: %w", err)
	}

	batch := make([]ranking.ProductSnapshot, len(items))
	for i, raw := range items {
		p, err := decodeSnapshot(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding product snapshots: item %d: %w", i, err)
		}
		batch[i] = p
	}
	return batch, nil
}

func checkBatch(data []byte) error {
	schema, err := batchSchema()
	if err != nil {
		return fmt.Errorf("loading snapshot schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(errs, "; "))
}

// decodeSnapshot decodes one product. Only failures that make the item
// unreadable are returned; field faults are recorded on the snapshot.
func decodeSnapshot(raw json.RawMessage) (ranking.ProductSnapshot, error) {
	invalid, err := productFaults(raw)
	if err != nil {
		return ranking.ProductSnapshot{}, err
	}

	var w snapshotWire
	if err := json.Unmarshal(raw, &w); err != nil {
		// Type mismatches leave the field nil and are already in invalid.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return ranking.ProductSnapshot{}, err
		}
	}

	p := ranking.ProductSnapshot{
		ID:                   deref(w.ID),
		Rating:               deref(w.Rating),
		ReviewCount:          deref(w.ReviewCount),
		SalesPerDay:          deref(w.SalesPerDay),
		Price:                deref(w.Price),
		CategoryAveragePrice: deref(w.CategoryAveragePrice),
		StockQuantity:        deref(w.StockQuantity),
		SellerScore:          deref(w.SellerScore),
		IsTrending:           deref(w.IsTrending),
		IsSeasonal:           deref(w.IsSeasonal),
	}
	if w.CreatedAt != nil && !slices.Contains(invalid, "createdAt") {
		t, err := time.Parse(time.RFC3339, *w.CreatedAt)
		if err != nil {
			invalid = append(invalid, "createdAt")
		}
		p.CreatedAt = t
	}

	// Numbers that overflow their Go type decode to nil without a schema fault.
	for name, absent := range map[string]bool{
		"id":            w.ID == nil,
		"rating":        w.Rating == nil,
		"reviewCount":   w.ReviewCount == nil,
		"salesPerDay":   w.SalesPerDay == nil,
		"price":         w.Price == nil,
		"stockQuantity": w.StockQuantity == nil,
		"sellerScore":   w.SellerScore == nil,
	} {
		if absent {
			invalid = append(invalid, name)
		}
	}

	if len(invalid) > 0 {
		slices.Sort(invalid)
		p.MarkInvalid(slices.Compact(invalid)...)
	}
	return p, nil
}

// productFaults returns the names of fields that are missing, null or of
// the wrong type.
func productFaults(raw json.RawMessage) ([]string, error) {
	schema, err := productSchema()
	if err != nil {
		return nil, fmt.Errorf("loading product schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}

	var fields []string
	for _, desc := range result.Errors() {
		name := desc.Field()
		if prop, ok := desc.Details()["property"].(string); ok && desc.Type() == "required" {
			name = prop
		}
		fields = append(fields, name)
	}
	return fields, nil
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// LoadSnapshots reads a snapshot batch from a JSON file.
func LoadSnapshots(path string) ([]ranking.ProductSnapshot, error) {
	f, err := os.Open(path) //nolint:gosec // path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("opening products file: %w", err)
	}
	defer f.Close()

	return DecodeSnapshots(f)
}

// DecodeSettings reads the admin screen's settings object. Keys the screen
// stores alongside the ranking fields are ignored; missing ranking keys stay
// unset so the result can be merged over a preset.
func DecodeSettings(r io.Reader) (ranking.Overrides, error) {
	var o ranking.Overrides
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return ranking.Overrides{}, fmt.Errorf("decoding ranking settings: %w", err)
	}
	return o, nil
}

// LoadSettings reads a settings object from a JSON file.
func LoadSettings(path string) (ranking.Overrides, error) {
	f, err := os.Open(path) //nolint:gosec // path from trusted CLI flag
	if err != nil {
		return ranking.Overrides{}, fmt.Errorf("opening settings file: %w", err)
	}
	defer f.Close()

	return DecodeSettings(f)
}
