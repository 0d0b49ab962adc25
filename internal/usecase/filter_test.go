package usecase

import (
	"testing"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbolsOf(records []models.InstrumentRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Symbol)
	}
	return out
}

func TestEligibleStrictTierShortCircuits(t *testing.T) {
	f := NewFilter(testConfig())
	records := []models.InstrumentRecord{
		{Symbol: "a", CurrentPrice: 0.5, Volume24h: 2_000_000, MarketCap: 500_000, MarketCapRank: 1}, // relaxed fails too (volume)
		{Symbol: "b", CurrentPrice: 1.2, Volume24h: 9_000_000, MarketCap: 40_000_000, MarketCapRank: 300},
		{Symbol: "c", CurrentPrice: 0.3, Volume24h: 15_000_000, MarketCap: 90_000_000, MarketCapRank: 80},
		{Symbol: "d", CurrentPrice: 2.0, Volume24h: 6_000_000, MarketCap: 2_000_000, MarketCapRank: 40}, // only relaxed
		{Symbol: "e", CurrentPrice: 4.9, Volume24h: 1_500_000, MarketCap: 11_000_000, MarketCapRank: 700},
	}

	got := f.Eligible(drepo.ClassCrypto, records)

	// b, c and e satisfy the strict tier, so the relaxed tier (which would
	// admit d and rank-sort) must never run. Input order is preserved.
	assert.Equal(t, []string{"b", "c", "e"}, symbolsOf(got))
}

func TestEligibleRelaxedTierSortsByRank(t *testing.T) {
	f := NewFilter(testConfig())
	records := []models.InstrumentRecord{
		{Symbol: "unranked", CurrentPrice: 1.0, Volume24h: 8_000_000},
		{Symbol: "mid", CurrentPrice: 0.4, Volume24h: 6_000_000, MarketCapRank: 150},
		{Symbol: "top", CurrentPrice: 2.5, Volume24h: 20_000_000, MarketCapRank: 12},
		{Symbol: "toopricey", CurrentPrice: 9.0, Volume24h: 50_000_000, MarketCapRank: 5},
	}

	got := f.Eligible(drepo.ClassCrypto, records)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"top", "mid", "unranked"}, symbolsOf(got))
}

func TestEligibleReturnsLastNonEmptyTier(t *testing.T) {
	f := NewFilter(testConfig())
	// Two instruments pass relaxed, none pass strict, and relaxed never
	// reaches three: the two relaxed matches still come back.
	records := []models.InstrumentRecord{
		{Symbol: "x", CurrentPrice: 0.9, Volume24h: 6_000_000, MarketCapRank: 90},
		{Symbol: "y", CurrentPrice: 0.2, Volume24h: 5_500_000, MarketCapRank: 40},
	}

	got := f.Eligible(drepo.ClassCrypto, records)
	assert.Equal(t, []string{"y", "x"}, symbolsOf(got))
}

func TestEligibleBondsRelaxedDropsVolume(t *testing.T) {
	f := NewFilter(testConfig())
	records := []models.InstrumentRecord{
		{Symbol: "US10Y", CurrentPrice: 96.5, Yield: 4.25, Volume24h: 850_000_000},
		{Symbol: "THIN1", CurrentPrice: 94.0, Yield: 5.1, Volume24h: 10_000_000},
		{Symbol: "THIN2", CurrentPrice: 92.0, Yield: 5.9, Volume24h: 5_000_000},
		{Symbol: "PREM", CurrentPrice: 104.0, Yield: 3.2, Volume24h: 900_000_000}, // above par cap everywhere
	}

	got := f.Eligible(drepo.ClassBonds, records)
	assert.Equal(t, []string{"US10Y", "THIN1", "THIN2"}, symbolsOf(got))
}

func TestEligibleAllTiersEmpty(t *testing.T) {
	f := NewFilter(testConfig())
	records := []models.InstrumentRecord{
		{Symbol: "junk", CurrentPrice: 120, Yield: 1.1, Volume24h: 100},
	}

	assert.Empty(t, f.Eligible(drepo.ClassBonds, records))
	assert.Empty(t, f.Eligible(drepo.ClassBonds, nil))
}

func TestEligibleDoesNotMutateInput(t *testing.T) {
	f := NewFilter(testConfig())
	records := []models.InstrumentRecord{
		{Symbol: "unranked", CurrentPrice: 1.0, Volume24h: 8_000_000},
		{Symbol: "mid", CurrentPrice: 0.4, Volume24h: 6_000_000, MarketCapRank: 150},
		{Symbol: "top", CurrentPrice: 2.5, Volume24h: 20_000_000, MarketCapRank: 12},
	}
	before := symbolsOf(records)

	f.Eligible(drepo.ClassCrypto, records)

	assert.Equal(t, before, symbolsOf(records))
}
