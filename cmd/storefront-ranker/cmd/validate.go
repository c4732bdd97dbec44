package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

var errInvalidConfig = errors.New("ranking config is invalid")

// validateReport is the JSON shape printed by validate.
type validateReport struct {
	Valid    bool                  `json:"valid"`
	Config   ranking.RankingConfig `json:"config"`
	Errors   []*ranking.FieldError `json:"errors,omitempty"`
	Warnings []ranking.Warning     `json:"warnings,omitempty"`
}

func validateCommand(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "validate",
		Short: "Check a ranking configuration without scoring anything",
		Long: "Resolves the preset, settings export, and overrides, then reports field\n" +
			"errors and warnings. Exits non-zero when any field is rejected.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}

	c.Flags().String("settings", "", "admin settings export (JSON) merged over the preset")
	c.Flags().String("preset", "", "base preset (default, fast_selling, cheapest, best_rated)")

	return c
}

func runValidate(cmd *cobra.Command, opts *options) error {
	if err := opts.checkOutput(); err != nil {
		return err
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	rc, err := opts.resolveRanking(cmd, cfg)
	if err != nil {
		return err
	}

	res := ranking.Validate(rc)
	report := validateReport{
		Valid:    res.Valid(),
		Config:   rc.Clamp(),
		Errors:   res.Errors,
		Warnings: res.Warnings,
	}

	if opts.jsonOutput() {
		if err := outputJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else if err := printValidateReport(cmd.OutOrStdout(), &report); err != nil {
		return err
	}

	if !report.Valid {
		return errInvalidConfig
	}
	return nil
}
