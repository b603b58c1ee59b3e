package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalYAML = `
database:
  host: localhost
  dbname: seogen
resolver:
  platform_domain: tradesites.app
`

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  address: ":9090"
  on_demand: true
database:
  host: db.internal
  user: seogen
  dbname: seogen
provider:
  model: claude-sonnet-4-20250514
  budget_tokens: 250000
generation:
  batch_size: 10
scoring:
  volume_cutoff: 2000
resolver:
  platform_domain: tradesites.app
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.True(t, cfg.Server.OnDemand)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Provider.Model)
	assert.Equal(t, 250000, cfg.Provider.BudgetTokens)
	assert.Equal(t, 10, cfg.Generation.BatchSize)
	assert.Equal(t, 2000, cfg.Scoring.VolumeCutoff)
	assert.Equal(t, "tradesites.app", cfg.Resolver.PlatformDomain)
}

func TestLoadFillsDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddress, cfg.Server.Address)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, DefaultBatchSize, cfg.Generation.BatchSize)
	assert.Equal(t, DefaultMaxMatrixSize, cfg.Generation.MaxMatrixSize)
	assert.Equal(t, DefaultMinPublishRate, cfg.Generation.MinPublishRate)
	assert.Equal(t, DefaultVolumeCutoff, cfg.Scoring.VolumeCutoff)
	assert.Equal(t, DefaultMinWordCount, cfg.Quality.MinWordCount)
	assert.Equal(t, DefaultMaxKeywordDensity, cfg.Quality.MaxKeywordDensity)
	assert.Equal(t, DefaultPassThreshold, cfg.Quality.PassThreshold)
	assert.InDelta(t, 1.0, cfg.Quality.UniquenessWeight+cfg.Quality.CoverageWeight+
		cfg.Quality.LocalIntentWeight+cfg.Quality.ReadabilityWeight, 0.001)
	assert.Equal(t, DefaultResolverTTL, cfg.Resolver.CacheTTL)
	assert.Equal(t, DefaultBusinessTimeout, cfg.Business.Timeout)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("SEOGEN_DB_HOST", "envhost")
	t.Setenv("SEOGEN_DB_NAME", "envdb")
	t.Setenv("SEOGEN_DEV_BUSINESS_ID", "dev-biz")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)
	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, "envdb", cfg.Database.DBName)
	assert.Equal(t, "dev-biz", cfg.Resolver.DevBusinessID)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  address: ":9090"
database:
  host: filehost
  dbname: seogen
generation:
  batch_size: 10
resolver:
  platform_domain: tradesites.app
`)

	t.Setenv("SEOGEN_ADDRESS", ":7070")
	t.Setenv("SEOGEN_DB_HOST", "envhost")
	t.Setenv("SEOGEN_BATCH_SIZE", "40")
	t.Setenv("SEOGEN_ON_DEMAND", "true")
	t.Setenv("SEOGEN_VOLUME_CUTOFF", "1500")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, 40, cfg.Generation.BatchSize)
	assert.True(t, cfg.Server.OnDemand)
	assert.Equal(t, 1500, cfg.Scoring.VolumeCutoff)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfigFile(t, "server: [not a mapping"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Database.Host = "localhost"
		cfg.Database.DBName = "seogen"
		cfg.Resolver.PlatformDomain = "tradesites.app"
		cfg.SetDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database.host",
		},
		{
			name:    "missing database name",
			mutate:  func(c *Config) { c.Database.DBName = "" },
			wantErr: "database.dbname",
		},
		{
			name: "missing platform domain",
			mutate: func(c *Config) {
				c.Resolver.PlatformDomain = ""
				c.Resolver.DevBusinessID = ""
			},
			wantErr: "platform_domain",
		},
		{
			name: "dev business id stands in for platform domain",
			mutate: func(c *Config) {
				c.Resolver.PlatformDomain = ""
				c.Resolver.DevBusinessID = "dev-biz"
			},
		},
		{
			name:    "non-positive batch size",
			mutate:  func(c *Config) { c.Generation.BatchSize = -1 },
			wantErr: "batch_size",
		},
		{
			name:    "non-positive keyword density",
			mutate:  func(c *Config) { c.Quality.MaxKeywordDensity = -0.5 },
			wantErr: "max_keyword_density",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvDurationOverride(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	assert.Equal(t, DefaultProviderTimeout, cfg.Provider.Timeout)

	t.Setenv("SEOGEN_DB_HOST", "localhost")
	t.Setenv("SEOGEN_DB_NAME", "seogen")
	t.Setenv("SEOGEN_DEV_BUSINESS_ID", "dev-biz")
	t.Setenv("SEOGEN_REDIS_DB", "3")

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Redis.DB)
	assert.Equal(t, 30*time.Second, loaded.Provider.Timeout)
}
