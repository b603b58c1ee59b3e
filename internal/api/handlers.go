// Package api exposes the HTTP surface: page serving by hostname, run
// management, and health endpoints.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
	"github.com/get-hunter/hero365-app-sub011/internal/orchestrator"
	"github.com/get-hunter/hero365-app-sub011/internal/store"
)

// runTimeout bounds a background generation run kicked off over HTTP.
const runTimeout = 30 * time.Minute

// HostResolver maps an inbound hostname to a business id.
type HostResolver interface {
	Resolve(ctx context.Context, hostname string) (string, error)
}

// ArtifactStore serves and generates artifacts.
type ArtifactStore interface {
	Get(ctx context.Context, businessID, path string) (*domain.Artifact, error)
	GetOrGenerate(ctx context.Context, businessID string, spec domain.PageSpec, gen store.GenerateFunc) (*domain.Artifact, error)
}

// ArtifactLister lists canonical artifacts for a business.
type ArtifactLister interface {
	ListByBusiness(ctx context.Context, businessID string, limit int) ([]*domain.Artifact, error)
}

// Runner executes generation runs and single-page generation.
type Runner interface {
	GenerateAll(ctx context.Context, businessID string, cfg orchestrator.Config) (*orchestrator.Result, error)
	Generate(ctx context.Context, spec domain.PageSpec, bc *domain.BusinessContext) (*domain.ContentVariant, domain.QualityMetrics, error)
}

// ContextLoader supplies the business snapshot for on-demand generation.
type ContextLoader interface {
	Load(ctx context.Context, businessID string) (*domain.BusinessContext, error)
}

// Handler handles HTTP requests for the page generation API.
type Handler struct {
	resolver HostResolver
	store    ArtifactStore
	lister   ArtifactLister
	runner   Runner
	loader   ContextLoader
	runs     *RunRegistry
	runCfg   orchestrator.Config
	onDemand bool
	logger   logger.Logger
}

// NewHandler creates a new API handler. runCfg is the base run configuration
// for API-triggered runs; onDemand enables generate-on-miss for page serving.
func NewHandler(
	resolver HostResolver,
	artifactStore ArtifactStore,
	lister ArtifactLister,
	runner Runner,
	loader ContextLoader,
	runCfg orchestrator.Config,
	onDemand bool,
	log logger.Logger,
) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		resolver: resolver,
		store:    artifactStore,
		lister:   lister,
		runner:   runner,
		loader:   loader,
		runs:     NewRunRegistry(),
		runCfg:   runCfg,
		onDemand: onDemand,
		logger:   log,
	}
}

// ServePage handles GET /pages/*path. The Host header picks the tenant; the
// path picks the artifact.
func (h *Handler) ServePage(c *gin.Context) {
	businessID, err := h.resolver.Resolve(c.Request.Context(), c.Request.Host)
	if err != nil {
		if errors.Is(err, domain.ErrUnresolvedHost) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown host"})
			return
		}
		h.logger.Error("host resolution failed",
			logger.String("host", c.Request.Host),
			logger.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "host resolution unavailable"})
		return
	}

	path := c.Param("path")
	spec, ok := domain.ParsePath(path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	artifact, err := h.store.Get(c.Request.Context(), businessID, spec.Path())
	if err == nil {
		c.JSON(http.StatusOK, toPageResponse(artifact))
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		h.logger.Error("artifact lookup failed",
			logger.String("business_id", businessID),
			logger.String("path", spec.Path()),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "artifact lookup failed"})
		return
	}

	if !h.onDemand {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	artifact, err = h.generateOnDemand(c.Request.Context(), businessID, spec)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
		h.logger.Error("on-demand generation failed",
			logger.String("business_id", businessID),
			logger.String("spec", spec.Key()),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "page generation failed"})
		return
	}
	c.JSON(http.StatusOK, toPageResponse(artifact))
}

func (h *Handler) generateOnDemand(ctx context.Context, businessID string, spec domain.PageSpec) (*domain.Artifact, error) {
	bc, err := h.loader.Load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	// Only specs backed by the business catalog are generable on demand.
	if _, ok := bc.ServiceByID(spec.ServiceID); !ok {
		return nil, domain.ErrNotFound
	}
	if _, ok := bc.LocationByID(spec.LocationID); !ok {
		return nil, domain.ErrNotFound
	}
	return h.store.GetOrGenerate(ctx, businessID, spec, func(genCtx context.Context) (*domain.ContentVariant, domain.QualityMetrics, error) {
		return h.runner.Generate(genCtx, spec, bc)
	})
}

// StartRunRequest represents a request to start a generation run.
type StartRunRequest struct {
	ForceRefresh bool     `json:"force_refresh"`
	Variants     []string `json:"variants"`
}

// StartRunResponse acknowledges an accepted generation run.
type StartRunResponse struct {
	RunID      uuid.UUID `json:"run_id"`
	BusinessID string    `json:"business_id"`
	State      RunState  `json:"state"`
}

// StartRun handles POST /api/v1/businesses/:id/generate. The run executes in
// the background; poll GET /api/v1/runs/:id for progress.
func (h *Handler) StartRun(c *gin.Context) {
	businessID := c.Param("id")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business id is required"})
		return
	}

	var req StartRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid run request", logger.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	variants := make([]domain.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variant := domain.Variant(v)
		if !variant.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown variant: " + v})
			return
		}
		variants = append(variants, variant)
	}

	runID := h.runs.Start(businessID)
	cfg := h.runCfg
	cfg.ForceRefresh = req.ForceRefresh
	cfg.Variants = variants
	cfg.OnProgress = func(p orchestrator.Progress) {
		h.runs.UpdateProgress(runID, p)
	}

	h.logger.Info("generation run accepted",
		logger.String("run_id", runID.String()),
		logger.String("business_id", businessID),
		logger.Bool("force_refresh", req.ForceRefresh))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		result, err := h.runner.GenerateAll(ctx, businessID, cfg)
		if err != nil {
			h.logger.Error("generation run failed",
				logger.String("run_id", runID.String()),
				logger.String("business_id", businessID),
				logger.Error(err))
			h.runs.Fail(runID, err)
			return
		}
		h.runs.Complete(runID, result)
	}()

	c.JSON(http.StatusAccepted, StartRunResponse{
		RunID:      runID,
		BusinessID: businessID,
		State:      RunStateRunning,
	})
}

// GetRun handles GET /api/v1/runs/:id.
func (h *Handler) GetRun(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, ok := h.runs.Get(runID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListPages handles GET /api/v1/businesses/:id/pages.
func (h *Handler) ListPages(c *gin.Context) {
	businessID := c.Param("id")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business id is required"})
		return
	}

	limit := 100
	artifacts, err := h.lister.ListByBusiness(c.Request.Context(), businessID, limit)
	if err != nil {
		h.logger.Error("list pages failed",
			logger.String("business_id", businessID),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pages"})
		return
	}

	pages := make([]PageSummary, len(artifacts))
	for i, a := range artifacts {
		pages[i] = toPageSummary(a)
	}
	c.JSON(http.StatusOK, PagesListResponse{Pages: pages, Total: len(pages)})
}

// HealthCheck handles GET /healthz.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "seogen",
	})
}
