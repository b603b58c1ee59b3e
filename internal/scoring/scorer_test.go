package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

func TestScoreRouting(t *testing.T) {
	s := New(Config{VolumeCutoff: 1000})
	spec := domain.PageSpec{ServiceID: "hvac-repair", LocationID: "austin", Variant: domain.VariantStandard}

	tests := []struct {
		name string
		sig  domain.MarketSignals
		want Tier
	}{
		{
			name: "low volume low competition stays on template",
			sig:  domain.MarketSignals{MonthlySearchVolume: 200, Competition: domain.CompetitionLow},
			want: TierTemplate,
		},
		{
			name: "volume above cutoff routes to enhanced",
			sig:  domain.MarketSignals{MonthlySearchVolume: 1001, Competition: domain.CompetitionLow},
			want: TierLLM,
		},
		{
			name: "volume exactly at cutoff stays on template",
			sig:  domain.MarketSignals{MonthlySearchVolume: 1000, Competition: domain.CompetitionLow},
			want: TierTemplate,
		},
		{
			name: "high competition routes to enhanced regardless of volume",
			sig:  domain.MarketSignals{MonthlySearchVolume: 50, Competition: domain.CompetitionHigh},
			want: TierLLM,
		},
		{
			name: "medium competition alone is not enough",
			sig:  domain.MarketSignals{MonthlySearchVolume: 500, Competition: domain.CompetitionMedium},
			want: TierTemplate,
		},
		{
			name: "money page alone does not change the tier",
			sig:  domain.MarketSignals{MonthlySearchVolume: 500, Competition: domain.CompetitionLow, MoneyPage: true},
			want: TierTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(spec, tt.sig).Tier)
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := New(Config{})
	spec := domain.PageSpec{ServiceID: "hvac-repair", LocationID: "austin", Variant: domain.VariantStandard}
	sig := domain.MarketSignals{MonthlySearchVolume: 1500, Competition: domain.CompetitionHigh, MoneyPage: true}

	first := s.Score(spec, sig)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(spec, sig))
	}
}

func TestScorePriorityOrdering(t *testing.T) {
	s := New(Config{})
	spec := domain.PageSpec{ServiceID: "hvac-repair", LocationID: "austin", Variant: domain.VariantStandard}

	low := s.Score(spec, domain.MarketSignals{MonthlySearchVolume: 100, Competition: domain.CompetitionLow})
	moneyPage := s.Score(spec, domain.MarketSignals{MonthlySearchVolume: 100, Competition: domain.CompetitionLow, MoneyPage: true})
	hot := s.Score(spec, domain.MarketSignals{MonthlySearchVolume: 5000, Competition: domain.CompetitionHigh, MoneyPage: true})

	assert.Greater(t, moneyPage.Priority, low.Priority)
	assert.Greater(t, hot.Priority, moneyPage.Priority)
}

func TestEstimateSignalsDeterministic(t *testing.T) {
	spec := domain.PageSpec{ServiceID: "duct-cleaning", LocationID: "round-rock", Variant: domain.VariantStandard}

	first := EstimateSignals(spec)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EstimateSignals(spec))
	}
}

// The estimator should route a small but meaningful share of a large matrix to
// the enhanced tier under the default policy.
func TestEstimateSignalsTierShare(t *testing.T) {
	s := New(Config{})

	total := 0
	enhanced := 0
	for svc := 0; svc < 40; svc++ {
		for loc := 0; loc < 25; loc++ {
			for _, variant := range domain.AllVariants {
				spec := domain.PageSpec{
					ServiceID:  fmt.Sprintf("service-%d", svc),
					LocationID: fmt.Sprintf("location-%d", loc),
					Variant:    variant,
				}
				total++
				if s.Score(spec, EstimateSignals(spec)).Tier == TierLLM {
					enhanced++
				}
			}
		}
	}

	share := float64(enhanced) / float64(total)
	assert.Greater(t, share, 0.05, "enhanced share too small: %.3f", share)
	assert.Less(t, share, 0.25, "enhanced share too large: %.3f", share)
}
