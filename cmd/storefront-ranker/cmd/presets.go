package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

// presetEntry pairs a preset name with its values for listing.
type presetEntry struct {
	Name   string                `json:"name"`
	Config ranking.RankingConfig `json:"config"`
}

func presetsCommand(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in ranking presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.checkOutput(); err != nil {
				return err
			}

			names := ranking.PresetNames()
			entries := make([]presetEntry, 0, len(names))
			for _, name := range names {
				cfg, err := ranking.ApplyPreset(name)
				if err != nil {
					return err
				}
				entries = append(entries, presetEntry{Name: name, Config: cfg})
			}

			if opts.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), entries)
			}
			return printPresetsTable(cmd.OutOrStdout(), entries)
		},
	}

	c.AddCommand(&cobra.Command{
		Use:   "show [name]",
		Short: "Show every value of one preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkOutput(); err != nil {
				return err
			}

			cfg, err := ranking.ApplyPreset(args[0])
			if err != nil {
				return err
			}

			if opts.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), cfg)
			}
			return printConfigDetail(cmd.OutOrStdout(), &cfg)
		},
	})

	return c
}
