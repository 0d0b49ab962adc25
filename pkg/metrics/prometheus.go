package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerRequests *prometheus.CounterVec
	cacheEvents      *prometheus.CounterVec
	pipelineLatency  *prometheus.HistogramVec
	recommendations  *prometheus.CounterVec
	deliveries       *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investscout_provider_requests_total",
				Help: "Total number of market data provider requests",
			},
			[]string{"provider", "result"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investscout_cache_events_total",
				Help: "Cache hits, misses and write failures",
			},
			[]string{"event"},
		),
		pipelineLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "investscout_pipeline_duration_seconds",
				Help:    "Duration of one recommendation pipeline run",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"class"},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investscout_recommendations_total",
				Help: "Recommendations produced, by class and data origin",
			},
			[]string{"class", "origin"},
		),
		deliveries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investscout_deliveries_total",
				Help: "Digest delivery attempts by channel",
			},
			[]string{"channel", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investscout_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordProviderRequest records one provider call outcome.
func (r *Recorder) RecordProviderRequest(provider, result string) {
	r.providerRequests.WithLabelValues(provider, result).Inc()
}

// RecordCacheEvent records a cache hit, miss or write failure.
func (r *Recorder) RecordCacheEvent(event string) {
	r.cacheEvents.WithLabelValues(event).Inc()
}

// RecordPipelineLatency records one pipeline run duration in seconds.
func (r *Recorder) RecordPipelineLatency(class string, seconds float64) {
	r.pipelineLatency.WithLabelValues(class).Observe(seconds)
}

// RecordRecommendations records how many recommendations a run produced.
func (r *Recorder) RecordRecommendations(class, origin string, n int) {
	r.recommendations.WithLabelValues(class, origin).Add(float64(n))
}

// RecordDelivery records a digest delivery attempt.
func (r *Recorder) RecordDelivery(channel, result string) {
	r.deliveries.WithLabelValues(channel, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
