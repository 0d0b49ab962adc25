package usecase

import (
	"math"
	"strings"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
)

// Scorer computes the weighted composite investment score. Every sub-score
// is a fixed step function of one raw metric, bounded to [0,10], so a score
// is always explainable by pointing at the band each metric fell into. An
// absent metric contributes 0 to its sub-score.
type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Score returns the composite score for one instrument, always in [0,10].
func (s *Scorer) Score(class drepo.AssetClass, r models.InstrumentRecord) float64 {
	var score float64
	switch class {
	case drepo.ClassBonds:
		score = yieldScore(r.Yield)*0.4 +
			ratingScore(r.Rating)*0.3 +
			bondVolumeScore(r.Volume24h)*0.2 +
			parScore(r.CurrentPrice)*0.1
	case drepo.ClassStocks:
		score = priceScore(r.CurrentPrice)*0.3 +
			volumeScore(r.Volume24h)*0.2 +
			stockCapScore(r.MarketCap)*0.2 +
			momentumScore(r.PriceChange24h)*0.3
	default:
		score = priceScore(r.CurrentPrice)*0.3 +
			volumeScore(r.Volume24h)*0.2 +
			cryptoCapScore(r.MarketCap)*0.2 +
			momentumScore(r.PriceChange24h)*0.3
	}
	return clamp(score)
}

// ScoreAll assigns InvestmentScore on a copy of the input slice.
func (s *Scorer) ScoreAll(class drepo.AssetClass, records []models.InstrumentRecord) []models.InstrumentRecord {
	out := make([]models.InstrumentRecord, len(records))
	copy(out, records)
	for i := range out {
		out[i].InvestmentScore = s.Score(class, out[i])
	}
	return out
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

// Cheaper is better: a $0.10 coin scores near 10, anything above $10
// scores 0.
func priceScore(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Max(0, 10-price)
}

func volumeScore(volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	return math.Min(10, volume/10_000_000)
}

// The sweet spot is a moderate cap: established enough to be liquid, small
// enough to have room to grow.
func cryptoCapScore(cap float64) float64 {
	switch {
	case cap <= 0:
		return 0
	case cap >= 10_000_000 && cap <= 1_000_000_000:
		return 10
	case cap < 10_000_000:
		return 5
	default:
		return 7
	}
}

func stockCapScore(cap float64) float64 {
	switch {
	case cap <= 0:
		return 0
	case cap >= 1_000_000_000 && cap <= 100_000_000_000:
		return 10
	default:
		return 7
	}
}

// A mild dip through mild growth is the buying-opportunity band. Deep drops
// score a middle value (possible value buy, risk-flagged elsewhere); strong
// rallies score lowest (overbought).
func momentumScore(change24h float64) float64 {
	switch {
	case change24h >= -20 && change24h <= 10:
		return 10
	case change24h < -20:
		return 5
	default:
		return 3
	}
}

func yieldScore(yield float64) float64 {
	switch {
	case yield >= 5:
		return 10
	case yield >= 4:
		return 8
	case yield >= 3:
		return 6
	default:
		return 3
	}
}

func ratingScore(rating string) float64 {
	switch {
	case rating == "AAA":
		return 10
	case strings.HasPrefix(rating, "AA"):
		return 9
	case strings.HasPrefix(rating, "A"):
		return 8
	case strings.HasPrefix(rating, "BBB"):
		return 6
	default:
		return 4
	}
}

func bondVolumeScore(volume float64) float64 {
	switch {
	case volume >= 500_000_000:
		return 10
	case volume >= 200_000_000:
		return 8
	case volume >= 100_000_000:
		return 6
	default:
		return 4
	}
}

// Distance from par (100): closer means less price risk at maturity.
func parScore(price float64) float64 {
	d := math.Abs(price - 100)
	switch {
	case d <= 1:
		return 10
	case d <= 3:
		return 8
	case d <= 5:
		return 6
	default:
		return 4
	}
}
