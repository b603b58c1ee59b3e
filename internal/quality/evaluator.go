// Package quality scores generated content and decides whether it may be
// published. Evaluation is a pure function of the rendered content.
package quality

import (
	"strings"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/templates"
)

// Config holds the quality gate tunables.
type Config struct {
	// MinWordCount fails the gate outright when not met.
	MinWordCount int
	// MaxKeywordDensity is the over-optimization band in percent. Exceeding it
	// fails the gate regardless of other scores.
	MaxKeywordDensity float64
	// PassThreshold is the minimum aggregate score for the gate.
	PassThreshold float64
	// Weights for the aggregate. Each must be non-negative so the aggregate
	// stays monotonic in every sub-score.
	UniquenessWeight  float64
	CoverageWeight    float64
	LocalIntentWeight float64
	ReadabilityWeight float64
}

// DefaultConfig returns the default gate policy.
func DefaultConfig() Config {
	return Config{
		MinWordCount:      500,
		MaxKeywordDensity: 2.5,
		PassThreshold:     60,
		UniquenessWeight:  0.3,
		CoverageWeight:    0.3,
		LocalIntentWeight: 0.2,
		ReadabilityWeight: 0.2,
	}
}

// Evaluator scores content variants. Stateless and safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// New creates an evaluator with the given policy.
func New(cfg Config) *Evaluator {
	def := DefaultConfig()
	if cfg.MinWordCount <= 0 {
		cfg.MinWordCount = def.MinWordCount
	}
	if cfg.MaxKeywordDensity <= 0 {
		cfg.MaxKeywordDensity = def.MaxKeywordDensity
	}
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = def.PassThreshold
	}
	if cfg.UniquenessWeight == 0 && cfg.CoverageWeight == 0 &&
		cfg.LocalIntentWeight == 0 && cfg.ReadabilityWeight == 0 {
		cfg.UniquenessWeight = def.UniquenessWeight
		cfg.CoverageWeight = def.CoverageWeight
		cfg.LocalIntentWeight = def.LocalIntentWeight
		cfg.ReadabilityWeight = def.ReadabilityWeight
	}
	return &Evaluator{cfg: cfg}
}

// Evaluate derives quality metrics for a content variant and applies the gate.
// The gate is a boolean AND of the word-count minimum, the keyword-density
// band, and the aggregate threshold.
func (e *Evaluator) Evaluate(cv *domain.ContentVariant) domain.QualityMetrics {
	text := servableText(cv)
	words := strings.Fields(strings.ToLower(text))
	wordCount := cv.WordCount
	if wordCount == 0 {
		wordCount = templates.WordCount(cv)
	}

	m := domain.QualityMetrics{
		WordCount:          wordCount,
		UniquenessPct:      uniquenessScore(words),
		TopicalCoveragePct: coverageScore(cv, text),
		LocalIntentDensity: localIntentDensity(words),
		ReadabilityScore:   readabilityScore(text),
		KeywordDensityPct:  keywordDensity(cv, words),
		InternalLinkCount:  strings.Count(cv.Body, "](/"),
	}

	m.OverallScore = aggregate(e.cfg, subScores{
		Uniqueness:  m.UniquenessPct,
		Coverage:    m.TopicalCoveragePct,
		LocalIntent: localIntentScore(m.LocalIntentDensity),
		Readability: m.ReadabilityScore,
	})
	m.Level = levelFor(m.OverallScore)
	m.PassedQualityGate = m.WordCount >= e.cfg.MinWordCount &&
		m.KeywordDensityPct <= e.cfg.MaxKeywordDensity &&
		m.OverallScore >= e.cfg.PassThreshold
	return m
}

// subScores are the 0-100 inputs to the aggregate.
type subScores struct {
	Uniqueness  float64
	Coverage    float64
	LocalIntent float64
	Readability float64
}

// aggregate is a weighted mean, monotonic non-decreasing in every sub-score
// as long as weights are non-negative.
func aggregate(cfg Config, s subScores) float64 {
	totalWeight := cfg.UniquenessWeight + cfg.CoverageWeight + cfg.LocalIntentWeight + cfg.ReadabilityWeight
	if totalWeight <= 0 {
		return 0
	}
	sum := s.Uniqueness*cfg.UniquenessWeight +
		s.Coverage*cfg.CoverageWeight +
		s.LocalIntent*cfg.LocalIntentWeight +
		s.Readability*cfg.ReadabilityWeight
	score := sum / totalWeight
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func levelFor(score float64) domain.QualityLevel {
	switch {
	case score >= 90:
		return domain.QualityExcellent
	case score >= 75:
		return domain.QualityGood
	case score >= 60:
		return domain.QualityAcceptable
	case score >= 40:
		return domain.QualityNeedsImprovement
	default:
		return domain.QualityPoor
	}
}

func servableText(cv *domain.ContentVariant) string {
	var sb strings.Builder
	sb.WriteString(cv.Heading)
	sb.WriteString(" ")
	sb.WriteString(cv.Body)
	for _, f := range cv.FAQs {
		sb.WriteString(" ")
		sb.WriteString(f.Question)
		sb.WriteString(" ")
		sb.WriteString(f.Answer)
	}
	return sb.String()
}

// uniquenessScore measures lexical diversity via distinct three-word shingles.
func uniquenessScore(words []string) float64 {
	const shingleSize = 3
	if len(words) < shingleSize {
		return 0
	}
	seen := make(map[string]struct{})
	total := len(words) - shingleSize + 1
	for i := 0; i < total; i++ {
		seen[strings.Join(words[i:i+shingleSize], " ")] = struct{}{}
	}
	return float64(len(seen)) / float64(total) * 100
}

// coverageScore measures how many target keywords actually appear in the
// servable text.
func coverageScore(cv *domain.ContentVariant, text string) float64 {
	if len(cv.Keywords) == 0 {
		return 50 // no targets declared; neutral coverage
	}
	lower := strings.ToLower(text) + " " + strings.ToLower(cv.Title)
	hits := 0
	for _, kw := range cv.Keywords {
		if kw == "" {
			continue
		}
		// A keyword counts as covered when all of its terms are present.
		covered := true
		for _, term := range strings.Fields(strings.ToLower(kw)) {
			if !strings.Contains(lower, term) {
				covered = false
				break
			}
		}
		if covered {
			hits++
		}
	}
	return float64(hits) / float64(len(cv.Keywords)) * 100
}

// localIntentMarkers signal local search intent.
var localIntentMarkers = []string{
	"local", "near", "nearby", "area", "neighborhood", "community",
	"serving", "serve", "city", "region", "licensed", "dispatchers",
}

// localIntentDensity is local-intent marker occurrences per 100 words.
func localIntentDensity(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	count := 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'()")
		for _, marker := range localIntentMarkers {
			if w == marker {
				count++
				break
			}
		}
	}
	return float64(count) / float64(len(words)) * 100
}

// localIntentScore maps raw density to a 0-100 sub-score; densities of 2 per
// 100 words or more earn full marks.
func localIntentScore(density float64) float64 {
	score := density * 50
	if score > 100 {
		return 100
	}
	return score
}

// readabilityScore approximates readability from average sentence length.
// Sentences around 15-20 words score highest; very long or very short average
// sentences are penalized.
func readabilityScore(text string) float64 {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentenceCount := 0
	wordTotal := 0
	for _, s := range sentences {
		n := len(strings.Fields(s))
		if n == 0 {
			continue
		}
		sentenceCount++
		wordTotal += n
	}
	if sentenceCount == 0 {
		return 0
	}

	avg := float64(wordTotal) / float64(sentenceCount)
	const ideal = 17.0
	deviation := avg - ideal
	if deviation < 0 {
		deviation = -deviation
	}
	score := 100 - deviation*4
	if score < 0 {
		return 0
	}
	return score
}

// keywordDensity returns the density in percent of the most frequent target
// keyword phrase.
func keywordDensity(cv *domain.ContentVariant, words []string) float64 {
	if len(words) == 0 || len(cv.Keywords) == 0 {
		return 0
	}
	joined := strings.Join(words, " ")
	maxDensity := 0.0
	for _, kw := range cv.Keywords {
		phrase := strings.ToLower(strings.TrimSpace(kw))
		if phrase == "" {
			continue
		}
		occurrences := strings.Count(joined, phrase)
		density := float64(occurrences) / float64(len(words)) * 100
		if density > maxDensity {
			maxDensity = density
		}
	}
	return maxDensity
}
