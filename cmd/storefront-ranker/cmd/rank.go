package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/storefront-ranker/internal/catalog"
	"github.com/donaldgifford/storefront-ranker/internal/config"
	"github.com/donaldgifford/storefront-ranker/internal/engine"
	"github.com/donaldgifford/storefront-ranker/internal/metrics"
	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

var errNoProducts = errors.New("--products or RANKER_PRODUCTS is required")

func rankCommand(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "rank",
		Short: "Rank a batch of product snapshots",
		Long: "Scores every product in the --products JSON array and prints them best\n" +
			"first. Excluded products are hidden from the table unless --all is set;\n" +
			"JSON output always includes them with their exclusion reason.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd, opts)
		},
	}

	c.Flags().String("products", "", "JSON file holding the product snapshot array (required, or RANKER_PRODUCTS)")
	c.Flags().String("settings", "", "admin settings export (JSON) merged over the preset")
	c.Flags().String("preset", "", "base preset (default, fast_selling, cheapest, best_rated)")
	c.Flags().String("now", "", "reference time for the new product boost (RFC3339)")
	c.Flags().Bool("all", false, "include excluded products in table output")
	c.Flags().Int("top", 0, "print only the first N eligible products (0 prints all)")

	return c
}

func runRank(cmd *cobra.Command, opts *options) error {
	if err := opts.checkOutput(); err != nil {
		return err
	}
	products := opts.setting(cmd, "products")
	if products == "" {
		return errNoProducts
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log := opts.newLogger(cmd, cfg)

	rc, err := opts.resolveRanking(cmd, cfg)
	if err != nil {
		return err
	}

	batch, err := catalog.LoadSnapshots(products)
	if err != nil {
		return err
	}

	engOpts := []engine.EngineOption{
		engine.WithLogger(log),
		engine.WithWorkers(cfg.Engine.Workers),
		engine.WithChunkSize(cfg.Engine.ChunkSize),
	}
	if s := opts.setting(cmd, "now"); s != "" {
		now, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parsing --now: %w", err)
		}
		engOpts = append(engOpts, engine.WithClock(func() time.Time { return now }))
	}

	res, rankErr := engine.NewEngine(engOpts...).Rank(cmd.Context(), rc, batch)

	// Failed runs are counted too, so the textfile is written either way.
	if err := writeMetrics(cfg); err != nil {
		log.Warn("writing metrics textfile", "error", err)
	}
	if rankErr != nil {
		return rankErr
	}

	if opts.jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), res)
	}

	all, _ := cmd.Flags().GetBool("all")
	top, _ := cmd.Flags().GetInt("top")
	return printRankTable(cmd.OutOrStdout(), res, all, top)
}

// resolveRanking applies --preset and --settings (or their RANKER_* env
// values) over the config file before merging.
func (o *options) resolveRanking(cmd *cobra.Command, cfg *config.Config) (ranking.RankingConfig, error) {
	rc := cfg.Ranking
	if p := o.setting(cmd, "preset"); p != "" {
		rc.Preset = p
	}
	if s := o.setting(cmd, "settings"); s != "" {
		rc.SettingsFile = s
	}
	return rc.Resolve()
}

func writeMetrics(cfg *config.Config) error {
	if cfg.Metrics.TextfilePath == "" {
		return nil
	}
	return metrics.WriteTextfile(cfg.Metrics.TextfilePath)
}
