// Package cmd implements the storefront-ranker CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/storefront-ranker/internal/config"
	"github.com/donaldgifford/storefront-ranker/pkg/logger"
)

// options holds the flag, env, and config file settings shared by all
// subcommands. Each root command owns its own viper instance.
type options struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{v: viper.New()}
	opts.v.SetEnvPrefix("RANKER")
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "storefront-ranker",
		Short: "Score and rank storefront products",
		Long: "storefront-ranker scores a batch of product snapshots against a ranking\n" +
			"configuration (a preset, an admin settings export, and overrides) and\n" +
			"prints the ranked list.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file path (defaults are used when empty)")
	flags.String("output", "table", "output format (table, json)")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")

	cobra.CheckErr(opts.v.BindPFlag("output", flags.Lookup("output")))
	cobra.CheckErr(opts.v.BindPFlag("log-level", flags.Lookup("log-level")))

	root.AddCommand(
		rankCommand(opts),
		validateCommand(opts),
		presetsCommand(opts),
		versionCommand(),
	)

	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// loadConfig reads the config file named by --config, or the defaults.
func (o *options) loadConfig() (*config.Config, error) {
	if o.cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func (o *options) newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if l := o.v.GetString("log-level"); l != "" {
		level = l
	}
	return logger.NewWithWriter(cmd.ErrOrStderr(), level, cfg.Logging.Format)
}

// setting returns a subcommand flag when it was given on the command line,
// otherwise the RANKER_* environment value, otherwise the flag default.
func (o *options) setting(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if v := o.v.GetString(name); v != "" {
		return v
	}
	if f != nil {
		return f.DefValue
	}
	return ""
}

func (o *options) jsonOutput() bool {
	return o.v.GetString("output") == "json"
}

func (o *options) checkOutput() error {
	switch out := o.v.GetString("output"); out {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table or json)", out)
	}
}
