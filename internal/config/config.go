// Package config loads the seogen service configuration from a YAML file with
// environment variable overrides. A .env file is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Default tunables. Every number the scoring and gating policy depends on is
// configuration, not a hardcoded business rule.
const (
	DefaultServerAddress     = ":8085"
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultBatchSize         = 20
	DefaultMaxMatrixSize     = 5000
	DefaultProgressEvery     = 20
	DefaultMinPublishRate    = 0.99
	DefaultVolumeCutoff      = 1000
	DefaultProviderTimeout   = 30 * time.Second
	DefaultProviderAttempts  = 2
	DefaultProviderBackoff   = 2 * time.Second
	DefaultMaxTokens         = 2048
	DefaultBudgetTokens      = 500_000
	DefaultMaxConcurrent     = 5
	DefaultRequestsPerSecond = 2.0
	DefaultMinWordCount      = 500
	DefaultMaxKeywordDensity = 2.5
	DefaultPassThreshold     = 60.0
	DefaultResolverTTL       = 5 * time.Minute
	DefaultResolverAttempts  = 2
	DefaultResolverTimeout   = 3 * time.Second
	DefaultBusinessTTL       = 5 * time.Minute
	DefaultBusinessTimeout   = 10 * time.Second
	DefaultArtifactCacheTTL  = 10 * time.Minute
	DefaultCacheMaxEntries   = 10_000
)

// Config is the root service configuration.
type Config struct {
	Debug      bool             `yaml:"debug"       env:"SEOGEN_DEBUG"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Provider   ProviderConfig   `yaml:"provider"`
	Generation GenerationConfig `yaml:"generation"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Quality    QualityConfig    `yaml:"quality"`
	Resolver   ResolverConfig   `yaml:"resolver"`
	Business   BusinessConfig   `yaml:"business"`
}

// ServerConfig configures the HTTP serving layer.
type ServerConfig struct {
	Address         string        `yaml:"address"          env:"SEOGEN_ADDRESS"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// OnDemand enables single-spec generation when a served path has no
	// artifact yet.
	OnDemand bool `yaml:"on_demand" env:"SEOGEN_ON_DEMAND"`
}

// DatabaseConfig configures the PostgreSQL artifact store.
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"SEOGEN_DB_HOST"`
	Port     string `yaml:"port"     env:"SEOGEN_DB_PORT"`
	User     string `yaml:"user"     env:"SEOGEN_DB_USER"`
	Password string `yaml:"password" env:"SEOGEN_DB_PASSWORD"`
	DBName   string `yaml:"dbname"   env:"SEOGEN_DB_NAME"`
	SSLMode  string `yaml:"sslmode"  env:"SEOGEN_DB_SSLMODE"`
}

// RedisConfig configures the optional artifact serve cache.
type RedisConfig struct {
	Address  string        `yaml:"address"  env:"SEOGEN_REDIS_ADDRESS"`
	Password string        `yaml:"password" env:"SEOGEN_REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"SEOGEN_REDIS_DB"`
	TTL      time.Duration `yaml:"ttl"`
}

// ProviderConfig configures the generative-text provider.
type ProviderConfig struct {
	APIKey            string        `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model             string        `yaml:"model"   env:"SEOGEN_PROVIDER_MODEL"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxAttempts       int           `yaml:"max_attempts"`
	RetryBackoff      time.Duration `yaml:"retry_backoff"`
	MaxTokens         int           `yaml:"max_tokens"`
	BudgetTokens      int           `yaml:"budget_tokens"`
	MaxConcurrent     int           `yaml:"max_concurrent"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// GenerationConfig configures the batch orchestrator.
type GenerationConfig struct {
	BatchSize      int     `yaml:"batch_size"       env:"SEOGEN_BATCH_SIZE"`
	MaxMatrixSize  int     `yaml:"max_matrix_size"  env:"SEOGEN_MAX_MATRIX"`
	ProgressEvery  int     `yaml:"progress_every"`
	MinPublishRate float64 `yaml:"min_publish_rate"`
}

// ScoringConfig configures the value-scoring policy.
type ScoringConfig struct {
	// VolumeCutoff routes specs with estimated monthly volume above this to
	// the enhanced tier.
	VolumeCutoff int `yaml:"volume_cutoff" env:"SEOGEN_VOLUME_CUTOFF"`
}

// QualityConfig configures the quality gate.
type QualityConfig struct {
	MinWordCount      int     `yaml:"min_word_count"`
	MaxKeywordDensity float64 `yaml:"max_keyword_density"`
	PassThreshold     float64 `yaml:"pass_threshold"`
	UniquenessWeight  float64 `yaml:"uniqueness_weight"`
	CoverageWeight    float64 `yaml:"coverage_weight"`
	LocalIntentWeight float64 `yaml:"local_intent_weight"`
	ReadabilityWeight float64 `yaml:"readability_weight"`
}

// ResolverConfig configures hostname-to-business resolution.
type ResolverConfig struct {
	PlatformDomain string        `yaml:"platform_domain" env:"SEOGEN_PLATFORM_DOMAIN"`
	BackendURL     string        `yaml:"backend_url"     env:"SEOGEN_RESOLVER_URL"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	MaxAttempts    int           `yaml:"max_attempts"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
	// DevBusinessID bypasses resolution entirely. Development only.
	DevBusinessID string `yaml:"dev_business_id" env:"SEOGEN_DEV_BUSINESS_ID"`
}

// BusinessConfig configures the business data provider client.
type BusinessConfig struct {
	BackendURL string        `yaml:"backend_url" env:"SEOGEN_BUSINESS_URL"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Validate checks required settings and returns the first problem found.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Resolver.PlatformDomain == "" && c.Resolver.DevBusinessID == "" {
		return errors.New("resolver.platform_domain is required outside development")
	}
	if c.Generation.BatchSize <= 0 {
		return fmt.Errorf("generation.batch_size must be positive, got %d", c.Generation.BatchSize)
	}
	if c.Quality.MaxKeywordDensity <= 0 {
		return fmt.Errorf("quality.max_keyword_density must be positive, got %v", c.Quality.MaxKeywordDensity)
	}
	return nil
}

// SetDefaults fills unset fields with defaults. Called before Validate.
func (c *Config) SetDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultServerAddress
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = DefaultArtifactCacheTTL
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultProviderTimeout
	}
	if c.Provider.MaxAttempts == 0 {
		c.Provider.MaxAttempts = DefaultProviderAttempts
	}
	if c.Provider.RetryBackoff == 0 {
		c.Provider.RetryBackoff = DefaultProviderBackoff
	}
	if c.Provider.MaxTokens == 0 {
		c.Provider.MaxTokens = DefaultMaxTokens
	}
	if c.Provider.BudgetTokens == 0 {
		c.Provider.BudgetTokens = DefaultBudgetTokens
	}
	if c.Provider.MaxConcurrent == 0 {
		c.Provider.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.Provider.RequestsPerSecond == 0 {
		c.Provider.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Generation.BatchSize == 0 {
		c.Generation.BatchSize = DefaultBatchSize
	}
	if c.Generation.MaxMatrixSize == 0 {
		c.Generation.MaxMatrixSize = DefaultMaxMatrixSize
	}
	if c.Generation.ProgressEvery == 0 {
		c.Generation.ProgressEvery = DefaultProgressEvery
	}
	if c.Generation.MinPublishRate == 0 {
		c.Generation.MinPublishRate = DefaultMinPublishRate
	}
	if c.Scoring.VolumeCutoff == 0 {
		c.Scoring.VolumeCutoff = DefaultVolumeCutoff
	}
	if c.Quality.MinWordCount == 0 {
		c.Quality.MinWordCount = DefaultMinWordCount
	}
	if c.Quality.MaxKeywordDensity == 0 {
		c.Quality.MaxKeywordDensity = DefaultMaxKeywordDensity
	}
	if c.Quality.PassThreshold == 0 {
		c.Quality.PassThreshold = DefaultPassThreshold
	}
	if c.Quality.UniquenessWeight == 0 && c.Quality.CoverageWeight == 0 &&
		c.Quality.LocalIntentWeight == 0 && c.Quality.ReadabilityWeight == 0 {
		c.Quality.UniquenessWeight = 0.3
		c.Quality.CoverageWeight = 0.3
		c.Quality.LocalIntentWeight = 0.2
		c.Quality.ReadabilityWeight = 0.2
	}
	if c.Resolver.CacheTTL == 0 {
		c.Resolver.CacheTTL = DefaultResolverTTL
	}
	if c.Resolver.MaxAttempts == 0 {
		c.Resolver.MaxAttempts = DefaultResolverAttempts
	}
	if c.Resolver.AttemptTimeout == 0 {
		c.Resolver.AttemptTimeout = DefaultResolverTimeout
	}
	if c.Business.CacheTTL == 0 {
		c.Business.CacheTTL = DefaultBusinessTTL
	}
	if c.Business.Timeout == 0 {
		c.Business.Timeout = DefaultBusinessTimeout
	}
}
