package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/templates"
)

func renderedVariant(t *testing.T) *domain.ContentVariant {
	t.Helper()
	bc := &domain.BusinessContext{
		ID:           "biz-1",
		Name:         "Elite HVAC",
		Phone:        "512-555-0100",
		YearsInTrade: 15,
		Rating:       4.9,
		ReviewCount:  212,
		Services:     []domain.Service{{ID: "hvac-repair", Name: "HVAC Repair"}},
		Locations:    []domain.Location{{ID: "austin", City: "Austin", Region: "TX"}},
	}
	cv, err := templates.NewEngine().RenderSpec(domain.PageSpec{
		ServiceID:  "hvac-repair",
		LocationID: "austin",
		Variant:    domain.VariantStandard,
	}, bc)
	require.NoError(t, err)
	return cv
}

func TestEvaluatePassesRenderedTemplate(t *testing.T) {
	e := New(DefaultConfig())
	m := e.Evaluate(renderedVariant(t))

	assert.True(t, m.PassedQualityGate, "library template output must clear the gate, got score %.1f", m.OverallScore)
	assert.GreaterOrEqual(t, m.WordCount, 500)
	assert.LessOrEqual(t, m.KeywordDensityPct, 2.5)
	assert.GreaterOrEqual(t, m.OverallScore, 60.0)
}

func TestEvaluateShortContentFails(t *testing.T) {
	e := New(DefaultConfig())

	cv := renderedVariant(t)
	words := strings.Fields(cv.Body)
	cv.Body = strings.Join(words[:250], " ")
	cv.FAQs = nil
	cv.WordCount = 0 // recount

	m := e.Evaluate(cv)
	assert.Less(t, m.WordCount, 500)
	assert.False(t, m.PassedQualityGate, "content under the word minimum must fail the gate")
}

func TestEvaluateKeywordStuffingFails(t *testing.T) {
	e := New(DefaultConfig())

	cv := renderedVariant(t)
	stuffed := strings.Repeat("hvac repair austin ", 60)
	cv.Body = cv.Body + " " + stuffed
	cv.Keywords = []string{"hvac repair austin"}
	cv.WordCount = 0

	m := e.Evaluate(cv)
	assert.Greater(t, m.KeywordDensityPct, 2.5)
	assert.False(t, m.PassedQualityGate, "over-optimized content must fail the gate")
}

func TestEvaluateDeterministic(t *testing.T) {
	e := New(DefaultConfig())
	cv := renderedVariant(t)

	first := e.Evaluate(cv)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Evaluate(cv))
	}
}

func TestAggregateMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	base := subScores{Uniqueness: 50, Coverage: 50, LocalIntent: 50, Readability: 50}
	baseScore := aggregate(cfg, base)

	raised := []subScores{
		{Uniqueness: 80, Coverage: 50, LocalIntent: 50, Readability: 50},
		{Uniqueness: 50, Coverage: 80, LocalIntent: 50, Readability: 50},
		{Uniqueness: 50, Coverage: 50, LocalIntent: 80, Readability: 50},
		{Uniqueness: 50, Coverage: 50, LocalIntent: 50, Readability: 80},
	}
	for i, s := range raised {
		assert.Greater(t, aggregate(cfg, s), baseScore, "raising sub-score %d must raise the aggregate", i)
	}
}

func TestAggregateClamped(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 100.0, aggregate(cfg, subScores{Uniqueness: 200, Coverage: 200, LocalIntent: 200, Readability: 200}))
	assert.Equal(t, 0.0, aggregate(cfg, subScores{Uniqueness: -50, Coverage: -50, LocalIntent: -50, Readability: -50}))
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.QualityLevel
	}{
		{95, domain.QualityExcellent},
		{90, domain.QualityExcellent},
		{80, domain.QualityGood},
		{60, domain.QualityAcceptable},
		{45, domain.QualityNeedsImprovement},
		{10, domain.QualityPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.score), "score %.0f", tt.score)
	}
}

func TestCoverageScore(t *testing.T) {
	t.Run("neutral without declared keywords", func(t *testing.T) {
		cv := &domain.ContentVariant{Body: "some text"}
		assert.Equal(t, 50.0, coverageScore(cv, cv.Body))
	})

	t.Run("full coverage when all terms present", func(t *testing.T) {
		cv := &domain.ContentVariant{
			Body:     "fast hvac repair for every austin home",
			Keywords: []string{"hvac repair austin"},
		}
		assert.Equal(t, 100.0, coverageScore(cv, cv.Body))
	})

	t.Run("missing keyword lowers coverage", func(t *testing.T) {
		cv := &domain.ContentVariant{
			Body:     "fast hvac repair for every austin home",
			Keywords: []string{"hvac repair austin", "boiler replacement"},
		}
		assert.Equal(t, 50.0, coverageScore(cv, cv.Body))
	})
}
