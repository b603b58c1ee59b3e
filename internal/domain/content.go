package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerationMethod records which strategy produced a content variant.
type GenerationMethod string

// Generation methods. Fallback marks template output that was only produced
// because the generative provider failed, so QA can tell degraded pages apart
// from pages that were template-tier by policy.
const (
	MethodTemplate GenerationMethod = "template"
	MethodLLM      GenerationMethod = "llm"
	MethodFallback GenerationMethod = "fallback"
)

// FAQ is one question/answer pair rendered on a page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SchemaBlock is one structured-data (JSON-LD) block attached to a page.
type SchemaBlock map[string]any

// ContentVariant is one rendered outcome for a PageSpec.
type ContentVariant struct {
	Title           string           `json:"title"`
	MetaDescription string           `json:"meta_description"`
	Heading         string           `json:"heading"`
	Body            string           `json:"body"`
	SchemaBlocks    []SchemaBlock    `json:"schema_blocks,omitempty"`
	FAQs            []FAQ            `json:"faqs,omitempty"`
	Keywords        []string         `json:"keywords,omitempty"`
	Method          GenerationMethod `json:"generation_method"`
	WordCount       int              `json:"word_count"`
	CreatedAt       time.Time        `json:"created_at"`
}

// QualityLevel is the discrete quality band derived from the overall score.
type QualityLevel string

// Quality levels.
const (
	QualityExcellent        QualityLevel = "excellent"
	QualityGood             QualityLevel = "good"
	QualityAcceptable       QualityLevel = "acceptable"
	QualityNeedsImprovement QualityLevel = "needs_improvement"
	QualityPoor             QualityLevel = "poor"
)

// QualityMetrics are attached to a ContentVariant at evaluation time and never
// mutated afterwards.
type QualityMetrics struct {
	OverallScore       float64      `json:"overall_score"`
	Level              QualityLevel `json:"level"`
	WordCount          int          `json:"word_count"`
	UniquenessPct      float64      `json:"uniqueness_pct"`
	TopicalCoveragePct float64      `json:"topical_coverage_pct"`
	LocalIntentDensity float64      `json:"local_intent_density"`
	ReadabilityScore   float64      `json:"readability_score"`
	KeywordDensityPct  float64      `json:"keyword_density_pct"`
	InternalLinkCount  int          `json:"internal_link_count"`
	PassedQualityGate  bool         `json:"passed_quality_gate"`
}

// ArtifactStatus is the lifecycle state of an artifact version.
type ArtifactStatus string

// Artifact lifecycle states. Only published artifacts are servable.
const (
	StatusDraft     ArtifactStatus = "draft"
	StatusPublished ArtifactStatus = "published"
	StatusArchived  ArtifactStatus = "archived"
)

// Artifact is the durable, servable unit: one page spec with its canonical
// content, quality metrics, and optional A/B variant overlays. Regeneration
// never mutates a version in place; it writes a new version and atomically
// swaps the canonical reference.
type Artifact struct {
	ID         uuid.UUID                 `json:"id"`
	BusinessID string                    `json:"business_id"`
	Spec       PageSpec                  `json:"spec"`
	Path       string                    `json:"path"`
	Content    ContentVariant            `json:"content"`
	Metrics    QualityMetrics            `json:"metrics"`
	Status     ArtifactStatus            `json:"status"`
	Version    int                       `json:"version"`
	ABVariants map[string]ContentVariant `json:"ab_variants,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}
