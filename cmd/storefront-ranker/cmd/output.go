package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/storefront-ranker/internal/engine"
	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// printRankTable prints eligible products in rank order. With all set,
// excluded products follow with their reason. top limits the eligible rows.
func printRankTable(w io.Writer, res *engine.Result, all bool, top int) error {
	tw := newTabWriter(w)
	tw.writef("RANK\tPRODUCT\tSCORE\tWEIGHTED\tREVIEWS\tBOOSTS\tSTATUS\n")

	rank := 0
	for i := range res.Products {
		p := &res.Products[i]
		if p.Excluded {
			if all {
				tw.writef("-\t%s\t-\t-\t%d\t-\texcluded (%s)\n", p.ProductID, p.ReviewCount, reasonText(p))
			}
			continue
		}
		rank++
		if top > 0 && rank > top {
			continue
		}
		tw.writef("%d\t%s\t%.2f\t%.2f\t%d\t%s\tok\n",
			rank,
			p.ProductID,
			p.FinalScore,
			p.WeightedScore,
			p.ReviewCount,
			boostsText(p.AppliedBoosts),
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	return printSummary(w, res)
}

func printSummary(w io.Writer, res *engine.Result) error {
	tw := newTabWriter(w)
	tw.writef("\nRun:\t%s\n", res.RunID)
	tw.writef("Products:\t%d (%d excluded)\n", len(res.Products), res.Excluded)
	for _, warn := range res.Warnings {
		tw.writef("Warning:\t%s\n", warn.Message)
	}
	return tw.finish()
}

func printValidateReport(w io.Writer, r *validateReport) error {
	tw := newTabWriter(w)
	if r.Valid {
		tw.writef("Status:\tvalid\n")
	} else {
		tw.writef("Status:\tinvalid\n")
	}
	for _, fe := range r.Errors {
		tw.writef("Error:\t%s\n", fe.Error())
	}
	for _, warn := range r.Warnings {
		tw.writef("Warning:\t%s\n", warn.Message)
	}
	if err := tw.finish(); err != nil {
		return err
	}
	if !r.Valid {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printConfigDetail(w, &r.Config)
}

func printPresetsTable(w io.Writer, entries []presetEntry) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tRATING\tSALES\tPRICE\tSTOCK\tSELLER\tMIN RATING\n")
	for i := range entries {
		c := &entries[i].Config
		tw.writef("%s\t%g\t%g\t%g\t%g\t%g\t%g\n",
			entries[i].Name,
			c.RatingWeight,
			c.SalesSpeedWeight,
			c.PriceWeight,
			c.StockWeight,
			c.SellerWeight,
			c.MinRating,
		)
	}
	return tw.finish()
}

func printConfigDetail(w io.Writer, c *ranking.RankingConfig) error {
	tw := newTabWriter(w)
	tw.writef("Rating weight:\t%g\n", c.RatingWeight)
	tw.writef("Sales speed weight:\t%g\n", c.SalesSpeedWeight)
	tw.writef("Price weight:\t%g\n", c.PriceWeight)
	tw.writef("Stock weight:\t%g\n", c.StockWeight)
	tw.writef("Seller weight:\t%g\n", c.SellerWeight)
	tw.writef("Min rating:\t%g\n", c.MinRating)
	tw.writef("Min sales/day:\t%g\n", c.MinSalesPerDay)
	tw.writef("Max price deviation:\t%g%%\n", c.MaxPriceDeviation)
	tw.writef("Min stock level:\t%g\n", c.MinStockLevel)
	tw.writef("New product boost:\t%g\n", c.NewProductBoost)
	tw.writef("Trending boost:\t%g\n", c.TrendingBoost)
	tw.writef("Seasonal boost:\t%g\n", c.SeasonalBoost)
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func reasonText(p *ranking.ScoredProduct) string {
	if p.ExclusionReason == nil {
		return "unknown"
	}
	if len(p.InvalidFields) > 0 {
		return string(*p.ExclusionReason) + ":" + strings.Join(p.InvalidFields, ",")
	}
	return string(*p.ExclusionReason)
}

func boostsText(boosts []string) string {
	if len(boosts) == 0 {
		return "-"
	}
	return strings.Join(boosts, ",")
}
