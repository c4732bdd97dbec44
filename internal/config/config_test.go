package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/storefront-ranker/pkg/ranking"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty file applies defaults",
			yaml: ``,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, ranking.PresetDefault, cfg.Ranking.Preset)
				assert.Empty(t, cfg.Ranking.SettingsFile)
				assert.True(t, cfg.Ranking.Overrides.IsEmpty())
				assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Engine.Workers)
				assert.Equal(t, 256, cfg.Engine.ChunkSize)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Empty(t, cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "env var substitution",
			yaml: `
ranking:
  preset: cheapest
  settings_file: ${RANKER_TEST_SETTINGS}
metrics:
  textfile_path: ${RANKER_TEST_TEXTFILE}
`,
			envVars: map[string]string{
				"RANKER_TEST_SETTINGS": "/etc/ranker/settings.json",
				"RANKER_TEST_TEXTFILE": "/var/lib/node_exporter/ranker.prom",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "cheapest", cfg.Ranking.Preset)
				assert.Equal(t, "/etc/ranker/settings.json", cfg.Ranking.SettingsFile)
				assert.Equal(t, "/var/lib/node_exporter/ranker.prom", cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "inline overrides",
			yaml: `
ranking:
  preset: fast_selling
  overrides:
    trendingBoost: 15
    minStockLevel: 3
engine:
  workers: 4
  chunk_size: 64
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.NotNil(t, cfg.Ranking.Overrides.TrendingBoost)
				assert.Equal(t, 15.0, *cfg.Ranking.Overrides.TrendingBoost)
				require.NotNil(t, cfg.Ranking.Overrides.MinStockLevel)
				assert.Equal(t, 3.0, *cfg.Ranking.Overrides.MinStockLevel)
				assert.Nil(t, cfg.Ranking.Overrides.RatingWeight)
				assert.Equal(t, 4, cfg.Engine.Workers)
				assert.Equal(t, 64, cfg.Engine.ChunkSize)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "unknown preset",
			yaml: `
ranking:
  preset: most_expensive
`,
			wantErr: "ranking.preset",
		},
		{
			name: "invalid logging format",
			yaml: `
logging:
  format: xml
`,
			wantErr: "logging.format must be one of: text, json",
		},
		{
			name: "negative workers",
			yaml: `
engine:
  workers: -2
`,
			wantErr: "engine.workers must not be negative",
		},
		{
			name: "negative chunk size",
			yaml: `
engine:
  chunk_size: -1
`,
			wantErr: "engine.chunk_size must not be negative",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestParse_JoinsErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
ranking:
  preset: nope
engine:
  workers: -1
logging:
  format: yaml
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ranking.ErrUnknownPreset)
	assert.Contains(t, err.Error(), "engine.workers")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, ranking.PresetDefault, cfg.Ranking.Preset)
	assert.Equal(t, 256, cfg.Engine.ChunkSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestRankingConfig_Resolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settings,
		[]byte(`{"priceWeight": 10, "trendingBoost": 5, "activePreset": "custom"}`), 0o600))

	boost := 20.0

	tests := []struct {
		name    string
		cfg     RankingConfig
		want    func() ranking.RankingConfig
		wantErr string
	}{
		{
			name: "preset only",
			cfg:  RankingConfig{Preset: ranking.PresetBestRated},
			want: func() ranking.RankingConfig {
				cfg, _ := ranking.ApplyPreset(ranking.PresetBestRated)
				return cfg
			},
		},
		{
			name: "settings file over preset",
			cfg:  RankingConfig{Preset: ranking.PresetDefault, SettingsFile: settings},
			want: func() ranking.RankingConfig {
				cfg := ranking.DefaultConfig()
				cfg.PriceWeight = 10
				cfg.TrendingBoost = 5
				return cfg
			},
		},
		{
			name: "overrides win over settings file",
			cfg: RankingConfig{
				Preset:       ranking.PresetDefault,
				SettingsFile: settings,
				Overrides:    ranking.Overrides{TrendingBoost: &boost},
			},
			want: func() ranking.RankingConfig {
				cfg := ranking.DefaultConfig()
				cfg.PriceWeight = 10
				cfg.TrendingBoost = 20
				return cfg
			},
		},
		{
			name:    "unknown preset",
			cfg:     RankingConfig{Preset: "mystery"},
			wantErr: "unknown preset",
		},
		{
			name:    "missing settings file",
			cfg:     RankingConfig{Preset: ranking.PresetDefault, SettingsFile: filepath.Join(dir, "nope.json")},
			wantErr: "opening settings file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.cfg.Resolve()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}
