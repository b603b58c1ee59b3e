package api

import (
	"time"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

// PageResponse is the serving payload for one page. The shape is the same for
// every generation method; the method itself is reported as data. Internal
// template identifiers are never exposed.
type PageResponse struct {
	Path            string                  `json:"path"`
	Title           string                  `json:"title"`
	MetaDescription string                  `json:"meta_description"`
	Heading         string                  `json:"heading"`
	Body            string                  `json:"body"`
	FAQs            []domain.FAQ            `json:"faqs,omitempty"`
	SchemaBlocks    []domain.SchemaBlock    `json:"schema_blocks,omitempty"`
	Method          domain.GenerationMethod `json:"generation_method"`
	Quality         domain.QualityMetrics   `json:"quality"`
	Version         int                     `json:"version"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// PageSummary is one entry in a business page listing.
type PageSummary struct {
	Path         string                  `json:"path"`
	Title        string                  `json:"title"`
	Variant      domain.Variant          `json:"variant"`
	Method       domain.GenerationMethod `json:"generation_method"`
	QualityScore float64                 `json:"quality_score"`
	QualityLevel domain.QualityLevel     `json:"quality_level"`
	Version      int                     `json:"version"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// PagesListResponse is the page listing payload.
type PagesListResponse struct {
	Pages []PageSummary `json:"pages"`
	Total int           `json:"total"`
}

func toPageResponse(a *domain.Artifact) PageResponse {
	return PageResponse{
		Path:            a.Path,
		Title:           a.Content.Title,
		MetaDescription: a.Content.MetaDescription,
		Heading:         a.Content.Heading,
		Body:            a.Content.Body,
		FAQs:            a.Content.FAQs,
		SchemaBlocks:    a.Content.SchemaBlocks,
		Method:          a.Content.Method,
		Quality:         a.Metrics,
		Version:         a.Version,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toPageSummary(a *domain.Artifact) PageSummary {
	return PageSummary{
		Path:         a.Path,
		Title:        a.Content.Title,
		Variant:      a.Spec.Variant,
		Method:       a.Content.Method,
		QualityScore: a.Metrics.OverallScore,
		QualityLevel: a.Metrics.Level,
		Version:      a.Version,
		UpdatedAt:    a.UpdatedAt,
	}
}
