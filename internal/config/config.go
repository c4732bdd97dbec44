// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/storefront-ranker/internal/catalog"
	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

// Config is the top-level application configuration.
type Config struct {
	Ranking RankingConfig `yaml:"ranking"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// RankingConfig selects the ranking parameters: a base preset, an optional
// settings file exported from the admin screen, and inline overrides.
// Later sources win: preset, then settings file, then overrides.
type RankingConfig struct {
	Preset       string            `yaml:"preset"`
	SettingsFile string            `yaml:"settings_file"`
	Overrides    ranking.Overrides `yaml:"overrides"`
}

// Resolve builds the ranking configuration from the preset, the settings
// file (if any), and the inline overrides, in that order. The result is not
// validated; the engine validates it before scoring.
func (r *RankingConfig) Resolve() (ranking.RankingConfig, error) {
	cfg, err := ranking.ApplyPreset(r.Preset)
	if err != nil {
		return ranking.RankingConfig{}, err
	}

	if r.SettingsFile != "" {
		settings, err := catalog.LoadSettings(r.SettingsFile)
		if err != nil {
			return ranking.RankingConfig{}, err
		}
		cfg = ranking.Merge(cfg, settings)
	}

	return ranking.Merge(cfg, r.Overrides), nil
}

// EngineConfig defines scoring concurrency.
type EngineConfig struct {
	Workers   int `yaml:"workers"`
	ChunkSize int `yaml:"chunk_size"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig defines where run metrics are exported.
type MetricsConfig struct {
	// TextfilePath, when set, receives the Prometheus text exposition after
	// each run.
	TextfilePath string `yaml:"textfile_path"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML config content. Environment variables are expanded
// before parsing.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyRankingDefaults(&cfg.Ranking)
	applyEngineDefaults(&cfg.Engine)
	applyLoggingDefaults(&cfg.Logging)
}

func applyRankingDefaults(r *RankingConfig) {
	if r.Preset == "" {
		r.Preset = ranking.PresetDefault
	}
}

func applyEngineDefaults(e *EngineConfig) {
	if e.Workers == 0 {
		e.Workers = runtime.GOMAXPROCS(0)
	}
	if e.ChunkSize == 0 {
		e.ChunkSize = 256
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if _, err := ranking.ApplyPreset(cfg.Ranking.Preset); err != nil {
		errs = append(errs, fmt.Errorf("ranking.preset: %w", err))
	}

	if cfg.Engine.Workers < 0 {
		errs = append(errs, fmt.Errorf("engine.workers must not be negative (got %d)", cfg.Engine.Workers))
	}
	if cfg.Engine.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("engine.chunk_size must not be negative (got %d)", cfg.Engine.ChunkSize))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}
