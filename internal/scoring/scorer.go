// Package scoring implements the value-scoring policy that decides which page
// specs get generative enhancement and which stay on cheap templates.
package scoring

import (
	"hash/fnv"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

// Tier is the generation strategy assigned to a page spec.
type Tier string

// Tiers. The enhanced tier should cover roughly 5-15% of a matrix under the
// default policy.
const (
	TierTemplate Tier = "template"
	TierLLM      Tier = "llm"
)

// Decision is the scoring outcome for one spec.
type Decision struct {
	Tier     Tier    `json:"tier"`
	Priority float64 `json:"priority"`
}

// Config holds the scoring policy tunables.
type Config struct {
	// VolumeCutoff routes specs with monthly search volume above this to the
	// enhanced tier.
	VolumeCutoff int
}

// DefaultConfig returns the default scoring policy.
func DefaultConfig() Config {
	return Config{VolumeCutoff: 1000}
}

// Scorer applies the tier policy. It is stateless and safe for concurrent use.
type Scorer struct {
	cfg Config
}

// New creates a scorer with the given policy.
func New(cfg Config) *Scorer {
	if cfg.VolumeCutoff <= 0 {
		cfg.VolumeCutoff = DefaultConfig().VolumeCutoff
	}
	return &Scorer{cfg: cfg}
}

// Priority weighting. Volume dominates; competition and money-page status
// break ties within a tier.
const (
	volumeWeight      = 0.001
	competitionWeight = 10.0
	moneyPageWeight   = 25.0
)

// Score assigns a tier and priority to a spec. Pure and deterministic: the
// same spec and signals always produce the same decision.
func (s *Scorer) Score(spec domain.PageSpec, sig domain.MarketSignals) Decision {
	priority := float64(sig.MonthlySearchVolume) * volumeWeight
	switch sig.Competition {
	case domain.CompetitionHigh:
		priority += 2 * competitionWeight
	case domain.CompetitionMedium:
		priority += competitionWeight
	}
	if sig.MoneyPage {
		priority += moneyPageWeight
	}

	tier := TierTemplate
	if sig.MonthlySearchVolume > s.cfg.VolumeCutoff || sig.Competition == domain.CompetitionHigh {
		tier = TierLLM
	}
	return Decision{Tier: tier, Priority: priority}
}

// Signal estimation constants. The hash buckets are sized so that high-volume
// and high-competition specs together land in roughly a tenth of a matrix.
const (
	baseVolumeFloor   = 50
	baseVolumeSpread  = 450
	hotVolumeFloor    = 1200
	hotVolumeSpread   = 800
	hotVolumeBucket   = 12
	highCompBucket    = 17
	mediumCompBucket  = 3
	moneyPageBucket   = 8
)

// EstimateSignals derives deterministic market signals from a spec when no
// real keyword-research data is available. Identical specs always produce
// identical signals, keeping batch runs reproducible and auditable.
func EstimateSignals(spec domain.PageSpec) domain.MarketSignals {
	h := fnv.New64a()
	h.Write([]byte(spec.Key()))
	v := h.Sum64()

	sig := domain.MarketSignals{
		MonthlySearchVolume: baseVolumeFloor + int(v%baseVolumeSpread),
		Competition:         domain.CompetitionLow,
	}
	if v%hotVolumeBucket == 0 {
		sig.MonthlySearchVolume = hotVolumeFloor + int((v/hotVolumeBucket)%hotVolumeSpread)
	}
	switch {
	case v%highCompBucket == 0:
		sig.Competition = domain.CompetitionHigh
	case v%mediumCompBucket == 0:
		sig.Competition = domain.CompetitionMedium
	}
	// Standard service+location joins are the conversion pages.
	sig.MoneyPage = spec.Variant == domain.VariantStandard && v%moneyPageBucket == 0
	return sig
}
