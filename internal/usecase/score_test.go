package usecase

import (
	"testing"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"

	"github.com/stretchr/testify/assert"
)

func TestScoreCheapDippedCrypto(t *testing.T) {
	s := NewScorer()
	r := models.InstrumentRecord{
		CurrentPrice:   0.08,
		Volume24h:      150_000_000,
		MarketCap:      50_000_000,
		PriceChange24h: -18,
	}

	score := s.Score(drepo.ClassCrypto, r)

	// price 9.92*0.3 + volume 10*0.2 + cap 10*0.2 + momentum 10*0.3
	assert.InDelta(t, 9.976, score, 0.001)
	assert.Greater(t, score, 5.0, "cheap high-volume dip should land in the top half")
}

func TestScoreCorporateBond(t *testing.T) {
	s := NewScorer()
	r := models.InstrumentRecord{
		CurrentPrice: 97.0,
		Yield:        6.2,
		Rating:       "BBB",
		Volume24h:    190_000_000,
		Type:         "Corporate",
	}

	// yield 10*0.4 + rating 6*0.3 + volume 6*0.2 + par 8*0.1
	assert.InDelta(t, 7.8, s.Score(drepo.ClassBonds, r), 0.001)
}

func TestScoreBounds(t *testing.T) {
	s := NewScorer()
	for _, tc := range []struct {
		name  string
		class drepo.AssetClass
		r     models.InstrumentRecord
	}{
		{"empty crypto", drepo.ClassCrypto, models.InstrumentRecord{}},
		{"empty bond", drepo.ClassBonds, models.InstrumentRecord{}},
		{"expensive stock", drepo.ClassStocks, models.InstrumentRecord{CurrentPrice: 900, PriceChange24h: 40}},
		{"negative metrics", drepo.ClassCrypto, models.InstrumentRecord{CurrentPrice: -1, Volume24h: -5, MarketCap: -5}},
	} {
		score := s.Score(tc.class, tc.r)
		assert.GreaterOrEqual(t, score, 0.0, tc.name)
		assert.LessOrEqual(t, score, 10.0, tc.name)
	}
}

func TestScoreMissingMetricsContributeNothing(t *testing.T) {
	s := NewScorer()
	// Only a price. Volume and cap sub-scores must be 0, momentum sits in the
	// neutral band, so the composite is price*0.3 + 10*0.3.
	r := models.InstrumentRecord{CurrentPrice: 2}
	assert.InDelta(t, 8*0.3+10*0.3, s.Score(drepo.ClassCrypto, r), 0.001)
}

func TestScoreAllDoesNotMutateInput(t *testing.T) {
	s := NewScorer()
	in := []models.InstrumentRecord{{CurrentPrice: 0.5, Volume24h: 30_000_000, MarketCap: 80_000_000}}

	out := s.ScoreAll(drepo.ClassCrypto, in)

	assert.Zero(t, in[0].InvestmentScore, "input slice must stay untouched")
	assert.Greater(t, out[0].InvestmentScore, 0.0)
}

func TestRatingScoreLadder(t *testing.T) {
	cases := map[string]float64{
		"AAA": 10, "AA+": 9, "AA-": 9, "A": 8, "A-": 8,
		"BBB": 6, "BBB+": 6, "BB": 4, "": 4,
	}
	for rating, want := range cases {
		assert.Equal(t, want, ratingScore(rating), "rating %q", rating)
	}
}
