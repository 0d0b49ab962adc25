package usecase

import (
	"context"
	"errors"
	"testing"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecommender(t *testing.T, providers ...drepo.MarketProvider) *Recommender {
	t.Helper()
	cfg := testConfig()
	lgr := testLogger(t)
	acquirer := NewAcquirer(providers, cache.NewMemoryCache(), cfg, nopMetrics{}, lgr)
	return NewRecommender(acquirer, NewFilter(cfg), NewScorer(), NewRationale(cfg), nopMetrics{}, lgr)
}

func TestTopRecommendationsRankedAndCapped(t *testing.T) {
	p := &fakeProvider{name: "live", class: drepo.ClassCrypto, records: []models.InstrumentRecord{
		cheapCoin("doge", 0.12),
		cheapCoin("trx", 0.16),
		cheapCoin("ada", 0.45),
		cheapCoin("xlm", 0.11),
		cheapCoin("vet", 0.025),
	}}
	rc := newTestRecommender(t, p)

	set := rc.TopRecommendations(context.Background(), drepo.ClassCrypto, 0)

	require.Len(t, set.Items, 3)
	assert.Equal(t, "crypto", set.Class)
	assert.Equal(t, models.OriginLive, set.Origin)
	assert.Empty(t, set.Note)
	for i := 1; i < len(set.Items); i++ {
		assert.GreaterOrEqual(t,
			set.Items[i-1].Instrument.InvestmentScore,
			set.Items[i].Instrument.InvestmentScore,
			"items must be ranked by score, best first")
	}
	for _, item := range set.Items {
		assert.Greater(t, item.Instrument.CurrentPrice, 0.0)
		assert.NotEmpty(t, item.Reasons)
	}
}

func TestTopRecommendationsHonorsSmallerLimit(t *testing.T) {
	p := &fakeProvider{name: "live", class: drepo.ClassCrypto, records: []models.InstrumentRecord{
		cheapCoin("doge", 0.12),
		cheapCoin("trx", 0.16),
		cheapCoin("ada", 0.45),
	}}
	rc := newTestRecommender(t, p)

	set := rc.TopRecommendations(context.Background(), drepo.ClassCrypto, 1)
	assert.Len(t, set.Items, 1)
}

func TestTopRecommendationsEmptyWhenNothingEligible(t *testing.T) {
	p := &fakeProvider{name: "live", class: drepo.ClassBonds, records: []models.InstrumentRecord{
		{Symbol: "PREM", CurrentPrice: 110, Yield: 2.0, Volume24h: 1_000_000},
	}}
	rc := newTestRecommender(t, p)

	set := rc.TopRecommendations(context.Background(), drepo.ClassBonds, 0)

	assert.Empty(t, set.Items)
	assert.Equal(t, "No instruments matched the eligibility criteria. Try again later.", set.Note)
}

func TestTopRecommendationsSeedFallbackIsFlagged(t *testing.T) {
	p := &fakeProvider{name: "down", class: drepo.ClassCrypto, err: errors.New("unreachable")}
	rc := newTestRecommender(t, p)

	set := rc.TopRecommendations(context.Background(), drepo.ClassCrypto, 0)

	assert.Equal(t, models.OriginSeed, set.Origin)
	assert.NotEmpty(t, set.Items)
	assert.Contains(t, set.Note, "static snapshot")
}

func TestTopRecommendationsDeterministic(t *testing.T) {
	records := []models.InstrumentRecord{
		cheapCoin("doge", 0.12),
		cheapCoin("trx", 0.16),
		cheapCoin("ada", 0.45),
		cheapCoin("xlm", 0.11),
	}
	p1 := &fakeProvider{name: "live", class: drepo.ClassCrypto, records: records}
	p2 := &fakeProvider{name: "live", class: drepo.ClassCrypto, records: records}

	a := newTestRecommender(t, p1).TopRecommendations(context.Background(), drepo.ClassCrypto, 0)
	b := newTestRecommender(t, p2).TopRecommendations(context.Background(), drepo.ClassCrypto, 0)

	require.Len(t, b.Items, len(a.Items))
	for i := range a.Items {
		assert.Equal(t, a.Items[i].Instrument.Symbol, b.Items[i].Instrument.Symbol)
	}
}
