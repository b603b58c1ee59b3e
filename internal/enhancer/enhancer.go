// Package enhancer produces generative-model content for high-value page
// specs, wrapping the provider with timeout, bounded retry, rate limiting,
// and per-run cost accounting. When the provider cannot deliver, it falls
// back to template output so a spec never fails outright for provider
// reasons.
package enhancer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
	"github.com/get-hunter/hero365-app-sub011/internal/metrics"
	"github.com/get-hunter/hero365-app-sub011/internal/retry"
	"github.com/get-hunter/hero365-app-sub011/internal/templates"
)

// Config holds the enhancer tunables.
type Config struct {
	// Timeout bounds each provider attempt.
	Timeout time.Duration
	// MaxAttempts bounds provider retries per spec, including the first try.
	MaxAttempts int
	// RetryBackoff is the initial backoff between attempts.
	RetryBackoff time.Duration
	// MaxTokens caps the completion length.
	MaxTokens int
	// BudgetTokens is the per-run cost ceiling in estimated tokens. When
	// exhausted, remaining specs degrade to the template tier.
	BudgetTokens int
	// MaxConcurrent bounds in-flight provider calls.
	MaxConcurrent int
	// RequestsPerSecond smooths provider call rate.
	RequestsPerSecond float64
	// MinWords is passed to the prompt as the body length target.
	MinWords int
}

// DefaultConfig returns the default enhancer configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:           30 * time.Second,
		MaxAttempts:       2,
		RetryBackoff:      2 * time.Second,
		MaxTokens:         2048,
		BudgetTokens:      500_000,
		MaxConcurrent:     5,
		RequestsPerSecond: 2,
		MinWords:          600,
	}
}

// Enhancer generates enhanced content for page specs.
type Enhancer struct {
	completer TextCompleter
	engine    *templates.Engine
	limiter   *rate.Limiter
	sem       *semaphore.Weighted
	logger    logger.Logger
	metrics   *metrics.Metrics
	cfg       Config

	mu          sync.Mutex
	spentTokens int
}

// New creates an enhancer. engine is the fallback renderer and must not be
// nil.
func New(completer TextCompleter, engine *templates.Engine, cfg Config, log logger.Logger, m *metrics.Metrics) *Enhancer {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = def.RetryBackoff
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.BudgetTokens <= 0 {
		cfg.BudgetTokens = def.BudgetTokens
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = def.MaxConcurrent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = def.MinWords
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Enhancer{
		completer: completer,
		engine:    engine,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.MaxConcurrent),
		sem:       semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		logger:    log,
		metrics:   m,
		cfg:       cfg,
	}
}

// ResetBudget clears the per-run cost accounting. Called at the start of each
// batch run.
func (e *Enhancer) ResetBudget() {
	e.mu.Lock()
	e.spentTokens = 0
	e.mu.Unlock()
}

// SpentTokens returns the tokens charged against the current run budget.
func (e *Enhancer) SpentTokens() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spentTokens
}

// Enhance produces a content variant for a spec. Strategy order: provider
// (with retry) -> template fallback. Budget exhaustion degrades to the
// template tier (method "template"); provider failure degrades to template
// output tagged "fallback" so QA can tell the two apart. The returned error
// is non-nil only when the template fallback itself cannot render.
func (e *Enhancer) Enhance(ctx context.Context, spec domain.PageSpec, bc *domain.BusinessContext, sig domain.MarketSignals) (*domain.ContentVariant, error) {
	prompt := buildPrompt(spec, bc, sig, e.cfg.MinWords)

	if !e.chargeBudget(estimateTokens(prompt, e.cfg.MaxTokens)) {
		e.logger.Info("generation budget exhausted, degrading to template tier",
			logger.String("spec", spec.Key()),
			logger.Int("budget_tokens", e.cfg.BudgetTokens))
		return e.engine.RenderSpec(spec, bc)
	}

	cv, err := e.complete(ctx, spec, bc, prompt)
	if err == nil {
		e.logger.Debug("content enhanced",
			logger.String("spec", spec.Key()),
			logger.Int("word_count", cv.WordCount))
		return cv, nil
	}

	e.logger.Warn("provider failed, falling back to template output",
		logger.String("spec", spec.Key()),
		logger.Error(err))

	fallback, renderErr := e.engine.RenderSpec(spec, bc)
	if renderErr != nil {
		return nil, fmt.Errorf("fallback render after provider failure: %w", renderErr)
	}
	fallback.Method = domain.MethodFallback
	return fallback, nil
}

func (e *Enhancer) complete(ctx context.Context, spec domain.PageSpec, bc *domain.BusinessContext, prompt string) (*domain.ContentVariant, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	var cv *domain.ContentVariant
	err := retry.Do(ctx, retry.Config{
		MaxAttempts:  e.cfg.MaxAttempts,
		InitialDelay: e.cfg.RetryBackoff,
		IsRetryable:  domain.IsTransientProviderError,
	}, func() error {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()

		raw, err := e.completer.Complete(attemptCtx, prompt, e.cfg.MaxTokens)
		if err != nil {
			if domain.IsTransientProviderError(err) {
				e.metrics.ProviderRequest("timeout")
			} else {
				e.metrics.ProviderRequest("error")
			}
			return err
		}
		e.metrics.ProviderRequest("ok")

		parsed, err := parseCompletion(raw, spec, bc)
		if err != nil {
			return err
		}
		cv = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cv, nil
}

// chargeBudget reserves estimated tokens against the run budget, reporting
// false when the ceiling would be exceeded.
func (e *Enhancer) chargeBudget(tokens int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.spentTokens+tokens > e.cfg.BudgetTokens {
		return false
	}
	e.spentTokens += tokens
	return true
}

// estimateTokens approximates prompt tokens at four characters per token plus
// the completion ceiling.
func estimateTokens(prompt string, maxTokens int) int {
	return len(prompt)/4 + maxTokens
}
