package usecase

import (
	"strings"
	"testing"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonsCheapDippedCrypto(t *testing.T) {
	g := NewRationale(testConfig())
	r := models.InstrumentRecord{
		CurrentPrice:   0.08,
		PriceChange24h: -18,
		Volume24h:      150_000_000,
		MarketCap:      50_000_000,
	}

	reasons := g.Reasons(drepo.ClassCrypto, r)

	require.Len(t, reasons, 3, "priority order caps the list at three")
	assert.Equal(t, "Very affordable price - $10 buys 125 coins", reasons[0])
	assert.Equal(t, "Significant drop (-18.0%) - good entry point", reasons[1])
	assert.Equal(t, "Very high liquidity", reasons[2])
}

func TestReasonsCorporateBond(t *testing.T) {
	g := NewRationale(testConfig())
	r := models.InstrumentRecord{
		CurrentPrice: 97.0,
		Yield:        6.2,
		Rating:       "BBB",
		Type:         "Corporate",
	}

	reasons := g.Reasons(drepo.ClassBonds, r)

	require.Len(t, reasons, 3)
	assert.Equal(t, "High yield (6.20%)", reasons[0])
	assert.Equal(t, "Investment grade rating (BBB)", reasons[1])
	assert.Equal(t, "Corporate bond - balanced risk and yield", reasons[2])
	for _, reason := range reasons {
		assert.NotContains(t, reason, "Government")
	}
}

func TestReasonsGovernmentBondNearPar(t *testing.T) {
	g := NewRationale(testConfig())
	r := models.InstrumentRecord{
		CurrentPrice: 98.9,
		Yield:        4.45,
		Rating:       "AAA",
		Type:         "Government",
	}

	reasons := g.Reasons(drepo.ClassBonds, r)

	require.Len(t, reasons, 3)
	assert.Equal(t, "Good yield (4.45%)", reasons[0])
	assert.Equal(t, "High credit rating (AAA) - low risk", reasons[1])
	assert.Equal(t, "Government bond - maximum safety", reasons[2])
}

func TestReasonsGenericFallback(t *testing.T) {
	g := NewRationale(testConfig())
	// Nothing triggers: middling price, flat momentum, low everything else.
	r := models.InstrumentRecord{
		CurrentPrice:  3.0,
		Volume24h:     1_000_000,
		MarketCap:     5_000_000,
		MarketCapRank: 600,
	}

	assert.Equal(t, []string{"Balanced metrics across the board"}, g.Reasons(drepo.ClassCrypto, r))
}

func TestReasonsStockUnits(t *testing.T) {
	g := NewRationale(testConfig())
	r := models.InstrumentRecord{CurrentPrice: 3.10, PriceChange24h: -6}

	reasons := g.Reasons(drepo.ClassStocks, r)

	require.NotEmpty(t, reasons)
	assert.Equal(t, "Affordable price - $10 buys 3 shares", reasons[0])
	assert.True(t, strings.HasPrefix(reasons[1], "Notable dip (-6.0%)"), "got %q", reasons[1])
}

func TestRisksLadder(t *testing.T) {
	g := NewRationale(testConfig())
	r := models.InstrumentRecord{
		CurrentPrice:   0.02,
		PriceChange24h: -25,
		Volume24h:      500_000,
		MarketCapRank:  1500,
	}

	risks := g.Risks(drepo.ClassCrypto, r)

	require.Len(t, risks, 3)
	assert.Equal(t, "High volatility: dropped 25.0% in 24h", risks[0])
	assert.Equal(t, "Low liquidity: exiting a position may be slow", risks[1])
	assert.Equal(t, "Small project: ranked outside the top 1000", risks[2])
}

func TestRisksAbsentForHealthyInstrument(t *testing.T) {
	g := NewRationale(testConfig())
	r := models.InstrumentRecord{
		CurrentPrice:   0.4,
		PriceChange24h: -2,
		Volume24h:      40_000_000,
		MarketCapRank:  60,
	}

	assert.Empty(t, g.Risks(drepo.ClassCrypto, r))
}
