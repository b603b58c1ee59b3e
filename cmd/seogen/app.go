package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/get-hunter/hero365-app-sub011/internal/business"
	"github.com/get-hunter/hero365-app-sub011/internal/config"
	"github.com/get-hunter/hero365-app-sub011/internal/database"
	"github.com/get-hunter/hero365-app-sub011/internal/enhancer"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
	"github.com/get-hunter/hero365-app-sub011/internal/metrics"
	"github.com/get-hunter/hero365-app-sub011/internal/orchestrator"
	"github.com/get-hunter/hero365-app-sub011/internal/quality"
	"github.com/get-hunter/hero365-app-sub011/internal/resolver"
	"github.com/get-hunter/hero365-app-sub011/internal/scoring"
	"github.com/get-hunter/hero365-app-sub011/internal/store"
	"github.com/get-hunter/hero365-app-sub011/internal/templates"
)

const redisPingTimeout = 3 * time.Second

// app holds the wired service components shared by the serve and generate
// commands.
type app struct {
	cfg          *config.Config
	logger       logger.Logger
	metrics      *metrics.Metrics
	db           *sqlx.DB
	redis        *redis.Client
	repo         *database.ArtifactRepository
	store        *store.Store
	loader       *business.Loader
	resolver     *resolver.Resolver
	orchestrator *orchestrator.Orchestrator
}

// newApp wires every component from configuration. The redis serve cache is
// optional: when unconfigured or unreachable, serving falls through to the
// database.
func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	m := metrics.New(prometheus.DefaultRegisterer)

	db, err := database.NewPostgresConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	repo := database.NewArtifactRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unavailable, serving without artifact cache",
				logger.String("address", cfg.Redis.Address),
				logger.Error(err))
			redisClient.Close()
			redisClient = nil
		}
		cancel()
	}

	artifactStore := store.New(repo, redisClient, cfg.Redis.TTL, log)

	engine := templates.NewEngine()
	scorer := scoring.New(scoring.Config{VolumeCutoff: cfg.Scoring.VolumeCutoff})
	evaluator := quality.New(quality.Config{
		MinWordCount:      cfg.Quality.MinWordCount,
		MaxKeywordDensity: cfg.Quality.MaxKeywordDensity,
		PassThreshold:     cfg.Quality.PassThreshold,
		UniquenessWeight:  cfg.Quality.UniquenessWeight,
		CoverageWeight:    cfg.Quality.CoverageWeight,
		LocalIntentWeight: cfg.Quality.LocalIntentWeight,
		ReadabilityWeight: cfg.Quality.ReadabilityWeight,
	})

	completer := enhancer.NewAnthropicClient(cfg.Provider.APIKey, cfg.Provider.Model)
	enh := enhancer.New(completer, engine, enhancer.Config{
		Timeout:           cfg.Provider.Timeout,
		MaxAttempts:       cfg.Provider.MaxAttempts,
		RetryBackoff:      cfg.Provider.RetryBackoff,
		MaxTokens:         cfg.Provider.MaxTokens,
		BudgetTokens:      cfg.Provider.BudgetTokens,
		MaxConcurrent:     cfg.Provider.MaxConcurrent,
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
		MinWords:          cfg.Quality.MinWordCount,
	}, log, m)

	backend := business.NewHTTPBackend(cfg.Business.BackendURL, cfg.Business.Timeout)
	loader := business.NewLoader(backend, cfg.Business.CacheTTL, config.DefaultCacheMaxEntries, log)

	hostResolver := resolver.New(
		resolver.NewHTTPBackend(cfg.Resolver.BackendURL),
		resolver.Config{
			PlatformDomain: cfg.Resolver.PlatformDomain,
			CacheTTL:       cfg.Resolver.CacheTTL,
			MaxAttempts:    cfg.Resolver.MaxAttempts,
			AttemptTimeout: cfg.Resolver.AttemptTimeout,
			DevBusinessID:  cfg.Resolver.DevBusinessID,
		}, log, m)

	orch := orchestrator.New(loader, engine, enh, evaluator, scorer, artifactStore, nil, log, m)

	return &app{
		cfg:          cfg,
		logger:       log,
		metrics:      m,
		db:           db,
		redis:        redisClient,
		repo:         repo,
		store:        artifactStore,
		loader:       loader,
		resolver:     hostResolver,
		orchestrator: orch,
	}, nil
}

// Close releases external connections.
func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// runConfig converts the service configuration into orchestrator run settings.
func (a *app) runConfig(force bool) orchestrator.Config {
	return orchestrator.Config{
		BatchSize:      a.cfg.Generation.BatchSize,
		MaxMatrixSize:  a.cfg.Generation.MaxMatrixSize,
		ProgressEvery:  a.cfg.Generation.ProgressEvery,
		MinPublishRate: a.cfg.Generation.MinPublishRate,
		ForceRefresh:   force,
	}
}
