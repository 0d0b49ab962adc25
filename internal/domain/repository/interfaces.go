package repository

import (
	"context"

	"InvestScout/internal/domain/models"
)

// MarketProvider fetches a normalized instrument snapshot for one asset
// class. Implementations must skip individual malformed records rather than
// failing the whole page, and must return the taxonomy errors from errors.go
// so the orchestrator can decide between retry and skip.
type MarketProvider interface {
	Name() string
	Class() AssetClass
	Fetch(ctx context.Context, limit int) ([]models.InstrumentRecord, error)
}

// Notifier delivers a pre-built text payload to a destination. Presentation
// formatting is the collaborator's concern, not the pipeline's.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// RecommendationSink receives produced recommendation sets. Sinks are
// best-effort: a store failure is logged and never fails the pipeline.
type RecommendationSink interface {
	Store(ctx context.Context, set *models.RecommendationSet) error
	Close() error
}

type Metrics interface {
	RecordProviderRequest(provider, result string)
	RecordCacheEvent(event string)
	RecordPipelineLatency(class string, seconds float64)
	RecordRecommendations(class, origin string, n int)
	RecordDelivery(channel, result string)
	RecordError(kind string)
}
