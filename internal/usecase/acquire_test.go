package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/cache"
	"InvestScout/pkg/config"
	applogger "InvestScout/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.Cache.TTL = 15 * time.Minute
	cfg.Cache.MemoryMaxSize = 100
	cfg.Providers.RetryAttempts = 2
	cfg.Providers.RetryDelay = time.Millisecond
	cfg.Criteria.MinMarketCap = 10_000_000
	cfg.Criteria.MinVolume24h = 1_000_000
	cfg.Criteria.MaxPrice = 5
	cfg.Criteria.DailyBudget = 10
	cfg.Schedule.Timezone = "UTC"
	return cfg
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return l
}

type nopMetrics struct{}

func (nopMetrics) RecordProviderRequest(string, string)    {}
func (nopMetrics) RecordCacheEvent(string)                 {}
func (nopMetrics) RecordPipelineLatency(string, float64)   {}
func (nopMetrics) RecordRecommendations(string, string, int) {}
func (nopMetrics) RecordDelivery(string, string)           {}
func (nopMetrics) RecordError(string)                      {}

type fakeProvider struct {
	name    string
	class   drepo.AssetClass
	records []models.InstrumentRecord
	err     error
	calls   int
}

func (p *fakeProvider) Name() string            { return p.name }
func (p *fakeProvider) Class() drepo.AssetClass { return p.class }

func (p *fakeProvider) Fetch(context.Context, int) ([]models.InstrumentRecord, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

func cheapCoin(id string, price float64) models.InstrumentRecord {
	return models.InstrumentRecord{
		ID: id, Symbol: id, Name: id,
		CurrentPrice:  price,
		Volume24h:     20_000_000,
		MarketCap:     100_000_000,
		MarketCapRank: 50,
	}
}

func newTestAcquirer(t *testing.T, providers ...drepo.MarketProvider) *Acquirer {
	t.Helper()
	return NewAcquirer(providers, cache.NewMemoryCache(), testConfig(), nopMetrics{}, testLogger(t))
}

func TestAcquirerSecondCallHitsCache(t *testing.T) {
	p := &fakeProvider{name: "live", class: drepo.ClassCrypto,
		records: []models.InstrumentRecord{cheapCoin("doge", 0.1)}}
	a := newTestAcquirer(t, p)

	first := a.Fetch(context.Background(), drepo.ClassCrypto, 0)
	require.Equal(t, models.OriginLive, first.Origin)
	require.Equal(t, 1, p.calls)

	second := a.Fetch(context.Background(), drepo.ClassCrypto, 0)
	assert.Equal(t, models.OriginCache, second.Origin)
	assert.Equal(t, 1, p.calls, "cache hit must not reach the network")
	assert.Equal(t, first.Records, second.Records)
}

func TestAcquirerRateLimitSkipsWithoutRetry(t *testing.T) {
	limited := &fakeProvider{name: "limited", class: drepo.ClassCrypto, err: drepo.ErrRateLimited}
	backup := &fakeProvider{name: "backup", class: drepo.ClassCrypto,
		records: []models.InstrumentRecord{cheapCoin("trx", 0.2)}}
	a := newTestAcquirer(t, limited, backup)

	res := a.Fetch(context.Background(), drepo.ClassCrypto, 0)
	require.Equal(t, models.OriginLive, res.Origin)
	assert.Equal(t, "backup", res.Provider)
	assert.Equal(t, 1, limited.calls, "rate limited provider must not be retried")
}

func TestAcquirerRetriesTransientErrors(t *testing.T) {
	flaky := &fakeProvider{name: "flaky", class: drepo.ClassCrypto, err: errors.New("boom")}
	backup := &fakeProvider{name: "backup", class: drepo.ClassCrypto,
		records: []models.InstrumentRecord{cheapCoin("ada", 0.5)}}
	a := newTestAcquirer(t, flaky, backup)

	res := a.Fetch(context.Background(), drepo.ClassCrypto, 0)
	require.Equal(t, models.OriginLive, res.Origin)
	assert.Equal(t, 2, flaky.calls, "transient errors retry up to the attempt budget")
}

func TestAcquirerSeedFallback(t *testing.T) {
	down := &fakeProvider{name: "down", class: drepo.ClassCrypto, err: errors.New("unreachable")}
	a := newTestAcquirer(t, down)

	res := a.Fetch(context.Background(), drepo.ClassCrypto, 0)
	require.Equal(t, models.OriginSeed, res.Origin)
	assert.NotEmpty(t, res.Records)
	for _, r := range res.Records {
		assert.Greater(t, r.CurrentPrice, 0.0)
	}
}

func TestAcquirerEmptyProviderResultFallsThrough(t *testing.T) {
	empty := &fakeProvider{name: "empty", class: drepo.ClassBonds}
	a := newTestAcquirer(t, empty)

	res := a.Fetch(context.Background(), drepo.ClassBonds, 0)
	assert.Equal(t, models.OriginSeed, res.Origin)
	assert.NotEmpty(t, res.Records)
}
