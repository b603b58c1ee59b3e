// Package orchestrator drives full-matrix page generation for a business:
// enumerate specs, pick a tier per spec, generate, gate, persist. Work runs
// in fixed-size batches with per-item failure isolation and monotonic
// progress reporting.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
	"github.com/get-hunter/hero365-app-sub011/internal/metrics"
	"github.com/get-hunter/hero365-app-sub011/internal/scoring"
)

// ContextLoader supplies the business snapshot for a run.
type ContextLoader interface {
	Load(ctx context.Context, businessID string) (*domain.BusinessContext, error)
}

// Renderer produces template-tier content.
type Renderer interface {
	RenderSpec(spec domain.PageSpec, bc *domain.BusinessContext) (*domain.ContentVariant, error)
}

// Enhancer produces enhanced-tier content, degrading internally on provider
// failure or budget exhaustion.
type Enhancer interface {
	Enhance(ctx context.Context, spec domain.PageSpec, bc *domain.BusinessContext, sig domain.MarketSignals) (*domain.ContentVariant, error)
	ResetBudget()
}

// Evaluator applies the quality gate.
type Evaluator interface {
	Evaluate(cv *domain.ContentVariant) domain.QualityMetrics
}

// TierScorer assigns a generation tier to a spec.
type TierScorer interface {
	Score(spec domain.PageSpec, sig domain.MarketSignals) scoring.Decision
}

// ArtifactWriter persists generation outcomes.
type ArtifactWriter interface {
	Upsert(ctx context.Context, businessID string, spec domain.PageSpec, cv *domain.ContentVariant, m domain.QualityMetrics) (*domain.Artifact, error)
	HasPublished(ctx context.Context, businessID, path string) (bool, error)
}

// SignalSource supplies market signals per spec. Must be deterministic so
// re-runs are reproducible.
type SignalSource func(spec domain.PageSpec) domain.MarketSignals

// Progress is one progress report. Percent is monotonically non-decreasing
// within a run.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// ProgressFunc receives progress reports. Called synchronously; keep it
// cheap.
type ProgressFunc func(Progress)

// Failure records one isolated per-spec failure.
type Failure struct {
	Spec  domain.PageSpec `json:"spec"`
	Path  string          `json:"path"`
	Class string          `json:"class"`
	Error string          `json:"error"`
}

// Result summarizes one generation run.
type Result struct {
	Total         int           `json:"total"`
	TemplateCount int           `json:"template_count"`
	EnhancedCount int           `json:"enhanced_count"`
	FallbackCount int           `json:"fallback_count"`
	Skipped       int           `json:"skipped"`
	Published     int           `json:"published"`
	Drafted       int           `json:"drafted"`
	Failures      []Failure     `json:"failures,omitempty"`
	Duration      time.Duration `json:"duration"`
	Cancelled     bool          `json:"cancelled"`
	PublishRate   float64       `json:"publish_rate"`
}

// Config holds per-run settings.
type Config struct {
	// BatchSize bounds concurrent in-flight specs.
	BatchSize int
	// MaxMatrixSize is the hard safety ceiling for the expanded matrix.
	MaxMatrixSize int
	// ProgressEvery emits a progress report every N completed items. Batch
	// boundaries always emit.
	ProgressEvery int
	// Variants to generate; defaults to all.
	Variants []domain.Variant
	// ForceRefresh regenerates specs that already have a published artifact.
	ForceRefresh bool
	// MinPublishRate is the deploy-success threshold; below it the run logs a
	// warning but still completes.
	MinPublishRate float64
	// OnProgress receives progress reports. Optional.
	OnProgress ProgressFunc
}

// DefaultConfig returns the default run settings.
func DefaultConfig() Config {
	return Config{
		BatchSize:      20,
		MaxMatrixSize:  5000,
		ProgressEvery:  20,
		MinPublishRate: 0.99,
	}
}

// Orchestrator coordinates generation runs.
type Orchestrator struct {
	loader    ContextLoader
	renderer  Renderer
	enhancer  Enhancer
	evaluator Evaluator
	scorer    TierScorer
	writer    ArtifactWriter
	signals   SignalSource
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// New creates an orchestrator. signals may be nil, in which case the
// deterministic estimator is used.
func New(
	loader ContextLoader,
	renderer Renderer,
	enhancer Enhancer,
	evaluator Evaluator,
	scorer TierScorer,
	writer ArtifactWriter,
	signals SignalSource,
	log logger.Logger,
	m *metrics.Metrics,
) *Orchestrator {
	if signals == nil {
		signals = scoring.EstimateSignals
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{
		loader:    loader,
		renderer:  renderer,
		enhancer:  enhancer,
		evaluator: evaluator,
		scorer:    scorer,
		writer:    writer,
		signals:   signals,
		logger:    log,
		metrics:   m,
	}
}

// GenerateAll runs the full matrix for a business. Per-spec failures are
// isolated into the result; only run-level failures (context load, matrix
// ceiling) return an error. Cancellation lets in-flight items finish, stops
// dispatching new ones, and marks the result cancelled.
func (o *Orchestrator) GenerateAll(ctx context.Context, businessID string, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	start := time.Now()

	bc, err := o.loader.Load(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("load business context: %w", err)
	}

	specs, err := domain.ExpandMatrix(bc, cfg.Variants, cfg.MaxMatrixSize)
	if err != nil {
		return nil, err
	}

	o.logger.Info("generation run starting",
		logger.String("business_id", businessID),
		logger.Int("total_specs", len(specs)),
		logger.Int("batch_size", cfg.BatchSize),
		logger.Bool("force_refresh", cfg.ForceRefresh))

	o.enhancer.ResetBudget()

	run := &runState{
		result: Result{Total: len(specs)},
		total:  len(specs),
		cfg:    cfg,
	}

	// Dispatched items run on a context detached from run cancellation so
	// they finish and persist; cancellation only stops new dispatch.
	itemCtx := context.WithoutCancel(ctx)

	for batchStart := 0; batchStart < len(specs); batchStart += cfg.BatchSize {
		if ctx.Err() != nil {
			break
		}

		batchEnd := batchStart + cfg.BatchSize
		if batchEnd > len(specs) {
			batchEnd = len(specs)
		}

		var wg sync.WaitGroup
		for _, spec := range specs[batchStart:batchEnd] {
			wg.Add(1)
			go func(spec domain.PageSpec) {
				defer wg.Done()
				o.processSpec(itemCtx, businessID, bc, spec, run)
			}(spec)
		}
		wg.Wait()

		run.emitProgress()
	}

	run.mu.Lock()
	result := run.result
	run.mu.Unlock()

	result.Cancelled = ctx.Err() != nil
	result.Duration = time.Since(start)
	attempted := result.Total - result.Skipped
	if attempted > 0 {
		result.PublishRate = float64(result.Published) / float64(attempted)
	} else {
		result.PublishRate = 1
	}

	o.metrics.RunCompleted(result.Duration)
	o.logRunOutcome(businessID, &result, cfg)
	return &result, nil
}

func (o *Orchestrator) processSpec(ctx context.Context, businessID string, bc *domain.BusinessContext, spec domain.PageSpec, run *runState) {
	defer run.complete()

	if !run.cfg.ForceRefresh {
		published, err := o.writer.HasPublished(ctx, businessID, spec.Path())
		if err == nil && published {
			run.skip()
			return
		}
		// A check failure is not fatal; generation proceeds and the upsert
		// decides.
	}

	cv, m, err := o.Generate(ctx, spec, bc)
	if err != nil {
		o.recordFailure(run, spec, err)
		return
	}

	artifact, err := o.writer.Upsert(ctx, businessID, spec, cv, m)
	if err != nil {
		o.recordFailure(run, spec, err)
		return
	}

	if !m.PassedQualityGate {
		o.metrics.QualityGateFailed()
	}
	o.metrics.PageGenerated(string(cv.Method))
	run.record(cv.Method, artifact.Status == domain.StatusPublished)
}

// Generate produces gated content for a single spec without persisting it.
// Shared by batch runs and on-demand single-page generation.
func (o *Orchestrator) Generate(ctx context.Context, spec domain.PageSpec, bc *domain.BusinessContext) (*domain.ContentVariant, domain.QualityMetrics, error) {
	sig := o.signals(spec)
	decision := o.scorer.Score(spec, sig)

	var cv *domain.ContentVariant
	var err error
	if decision.Tier == scoring.TierLLM {
		cv, err = o.enhancer.Enhance(ctx, spec, bc, sig)
	} else {
		cv, err = o.renderer.RenderSpec(spec, bc)
	}
	if err != nil {
		return nil, domain.QualityMetrics{}, err
	}

	return cv, o.evaluator.Evaluate(cv), nil
}

func (o *Orchestrator) recordFailure(run *runState, spec domain.PageSpec, err error) {
	o.metrics.GenerationFailed()
	o.logger.Error("page generation failed",
		logger.String("spec", spec.Key()),
		logger.String("class", domain.FailureClass(err)),
		logger.Error(err))
	run.fail(Failure{
		Spec:  spec,
		Path:  spec.Path(),
		Class: domain.FailureClass(err),
		Error: err.Error(),
	})
}

func (o *Orchestrator) logRunOutcome(businessID string, result *Result, cfg Config) {
	fields := []logger.Field{
		logger.String("business_id", businessID),
		logger.Int("total", result.Total),
		logger.Int("template", result.TemplateCount),
		logger.Int("enhanced", result.EnhancedCount),
		logger.Int("fallback", result.FallbackCount),
		logger.Int("skipped", result.Skipped),
		logger.Int("published", result.Published),
		logger.Int("failures", len(result.Failures)),
		logger.Duration("duration", result.Duration),
		logger.Bool("cancelled", result.Cancelled),
	}

	if result.PublishRate < cfg.MinPublishRate && !result.Cancelled {
		o.logger.Warn("generation run completed below publish-rate threshold",
			append(fields, logger.Float64("publish_rate", result.PublishRate),
				logger.Float64("threshold", cfg.MinPublishRate))...)
		return
	}
	o.logger.Info("generation run completed", fields...)
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.MaxMatrixSize <= 0 {
		cfg.MaxMatrixSize = def.MaxMatrixSize
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = def.ProgressEvery
	}
	if cfg.MinPublishRate <= 0 {
		cfg.MinPublishRate = def.MinPublishRate
	}
	if len(cfg.Variants) == 0 {
		cfg.Variants = domain.AllVariants
	}
}

// runState accumulates results across worker goroutines. All mutation happens
// under mu, which also serializes progress emission so reported percentages
// never go backwards.
type runState struct {
	mu        sync.Mutex
	result    Result
	completed int
	total     int
	cfg       Config
}

func (r *runState) complete() {
	r.mu.Lock()
	r.completed++
	emit := r.cfg.ProgressEvery > 0 && r.completed%r.cfg.ProgressEvery == 0
	r.mu.Unlock()
	if emit {
		r.emitProgress()
	}
}

func (r *runState) emitProgress() {
	if r.cfg.OnProgress == nil {
		return
	}
	r.mu.Lock()
	p := Progress{Completed: r.completed, Total: r.total}
	if r.total > 0 {
		p.Percent = float64(r.completed) / float64(r.total) * 100
	}
	r.cfg.OnProgress(p)
	r.mu.Unlock()
}

func (r *runState) skip() {
	r.mu.Lock()
	r.result.Skipped++
	r.mu.Unlock()
}

func (r *runState) fail(f Failure) {
	r.mu.Lock()
	r.result.Failures = append(r.result.Failures, f)
	r.mu.Unlock()
}

func (r *runState) record(method domain.GenerationMethod, published bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch method {
	case domain.MethodLLM:
		r.result.EnhancedCount++
	case domain.MethodFallback:
		r.result.FallbackCount++
	default:
		r.result.TemplateCount++
	}
	if published {
		r.result.Published++
	} else {
		r.result.Drafted++
	}
}
