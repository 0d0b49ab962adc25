package usecase

import (
	"context"
	"time"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/internal/service/ratelimit"
	"InvestScout/pkg/cache"
	"InvestScout/pkg/config"
	xlogger "InvestScout/pkg/logger"
)

const acquireKeyPrefix = "acquire"

// Local guard against hammering a provider across back-to-back runs, on top
// of whatever the provider itself enforces.
const (
	providerBurst     = 10
	providerRefillSec = 0.5
)

// Acquirer runs the provider fallback chain for one asset class: cache
// first, then each provider in priority order with bounded retries, then
// the embedded seed snapshot as the last resort. The returned result is
// tagged with its origin so downstream consumers can mark degraded output.
type Acquirer struct {
	providers     map[drepo.AssetClass][]drepo.MarketProvider
	cache         cache.Service
	ttl           time.Duration
	retryAttempts int
	retryDelay    time.Duration
	limiter       *ratelimit.Limiter
	metrics       drepo.Metrics
	logger        *xlogger.Logger
}

// NewAcquirer creates the acquisition orchestrator. Provider order within a
// class is the fallback priority order.
func NewAcquirer(
	providers []drepo.MarketProvider,
	cacheSvc cache.Service,
	cfg *config.Config,
	metrics drepo.Metrics,
	lgr *xlogger.Logger,
) *Acquirer {
	byClass := make(map[drepo.AssetClass][]drepo.MarketProvider)
	for _, p := range providers {
		byClass[p.Class()] = append(byClass[p.Class()], p)
	}
	return &Acquirer{
		providers:     byClass,
		cache:         cacheSvc,
		ttl:           cfg.Cache.TTL,
		retryAttempts: cfg.Providers.RetryAttempts,
		retryDelay:    cfg.Providers.RetryDelay,
		limiter:       ratelimit.New(),
		metrics:       metrics,
		logger:        lgr,
	}
}

// Fetch returns instrument records for the class. It never returns an error
// for provider failures; the seed snapshot guarantees a non-empty result.
func (a *Acquirer) Fetch(ctx context.Context, class drepo.AssetClass, limit int) *models.AcquisitionResult {
	key := cache.GenerateKeyWithParams(acquireKeyPrefix, class, limit)

	var cached []models.InstrumentRecord
	if err := a.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		a.metrics.RecordCacheEvent("hit")
		return &models.AcquisitionResult{Records: cached, Origin: models.OriginCache}
	}
	a.metrics.RecordCacheEvent("miss")

	for _, provider := range a.providers[class] {
		records, err := a.fetchWithRetry(ctx, provider, limit)
		if err != nil {
			a.logger.Warn("provider exhausted, trying next",
				xlogger.String("provider", provider.Name()), xlogger.Error(err))
			continue
		}
		if len(records) == 0 {
			a.logger.Warn("provider returned no records",
				xlogger.String("provider", provider.Name()))
			continue
		}

		if err := a.cache.Set(ctx, key, records, a.ttl); err != nil {
			a.metrics.RecordCacheEvent("write_failed")
			a.logger.Warn("cache write failed", xlogger.String("key", key), xlogger.Error(err))
		}
		return &models.AcquisitionResult{
			Records:  records,
			Origin:   models.OriginLive,
			Provider: provider.Name(),
		}
	}

	a.logger.Error("all providers failed, falling back to seed dataset",
		xlogger.String("class", string(class)), xlogger.String("seed_version", SeedVersion))
	a.metrics.RecordError("seed_fallback")
	return &models.AcquisitionResult{
		Records:  SeedRecords(class),
		Origin:   models.OriginSeed,
		Provider: "seed:" + SeedVersion,
	}
}

// fetchWithRetry attempts one provider up to the configured attempt count.
// A rate-limit response is never retried: the provider is suspended for the
// rest of this run and the chain moves on.
func (a *Acquirer) fetchWithRetry(ctx context.Context, provider drepo.MarketProvider, limit int) ([]models.InstrumentRecord, error) {
	if !a.limiter.Allow(provider.Name(), providerBurst, providerRefillSec) {
		a.metrics.RecordProviderRequest(provider.Name(), "throttled")
		return nil, drepo.ErrRateLimited
	}

	var lastErr error
	for attempt := 1; attempt <= a.retryAttempts; attempt++ {
		records, err := provider.Fetch(ctx, limit)
		if err == nil {
			a.metrics.RecordProviderRequest(provider.Name(), "success")
			return records, nil
		}
		lastErr = err

		if drepo.IsRateLimited(err) {
			a.metrics.RecordProviderRequest(provider.Name(), "rate_limited")
			return nil, err
		}
		a.metrics.RecordProviderRequest(provider.Name(), "error")
		a.logger.Debug("provider attempt failed",
			xlogger.String("provider", provider.Name()),
			xlogger.Int("attempt", attempt), xlogger.Error(err))

		if attempt < a.retryAttempts {
			select {
			case <-time.After(a.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
