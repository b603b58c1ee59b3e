// Package metrics exposes Prometheus collectors for the generation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service collectors. A nil *Metrics is a valid no-op
// receiver so components can run without a registry in tests.
type Metrics struct {
	pagesGenerated      *prometheus.CounterVec
	generationFailures  prometheus.Counter
	qualityGateFailures prometheus.Counter
	providerRequests    *prometheus.CounterVec
	resolverCacheHits   prometheus.Counter
	runDuration         prometheus.Histogram
}

// New registers the service collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		pagesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "seogen_pages_generated_total",
			Help: "Pages generated, labeled by generation method.",
		}, []string{"method"}),
		generationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "seogen_generation_failures_total",
			Help: "Page generation failures.",
		}),
		qualityGateFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "seogen_quality_gate_failures_total",
			Help: "Content variants rejected by the quality gate.",
		}),
		providerRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "seogen_provider_requests_total",
			Help: "Generative provider requests, labeled by outcome.",
		}, []string{"outcome"}),
		resolverCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "seogen_resolver_cache_hits_total",
			Help: "Host resolutions served from the in-memory cache.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "seogen_run_duration_seconds",
			Help:    "Batch generation run duration.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

// PageGenerated records a generated page by method.
func (m *Metrics) PageGenerated(method string) {
	if m != nil {
		m.pagesGenerated.WithLabelValues(method).Inc()
	}
}

// GenerationFailed records a per-spec failure.
func (m *Metrics) GenerationFailed() {
	if m != nil {
		m.generationFailures.Inc()
	}
}

// QualityGateFailed records a gate rejection.
func (m *Metrics) QualityGateFailed() {
	if m != nil {
		m.qualityGateFailures.Inc()
	}
}

// ProviderRequest records one provider call outcome ("ok", "error",
// "timeout").
func (m *Metrics) ProviderRequest(outcome string) {
	if m != nil {
		m.providerRequests.WithLabelValues(outcome).Inc()
	}
}

// ResolverCacheHit records a host resolution cache hit.
func (m *Metrics) ResolverCacheHit() {
	if m != nil {
		m.resolverCacheHits.Inc()
	}
}

// RunCompleted records a finished batch run.
func (m *Metrics) RunCompleted(d time.Duration) {
	if m != nil {
		m.runDuration.Observe(d.Seconds())
	}
}
