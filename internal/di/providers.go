package di

import (
	"context"
	"fmt"
	"time"

	"InvestScout/internal/domain/repository"
	"InvestScout/internal/handler/api"
	internalrepo "InvestScout/internal/repository"
	"InvestScout/internal/service/bonddata"
	"InvestScout/internal/service/coingecko"
	"InvestScout/internal/service/coinpaprika"
	"InvestScout/internal/service/finnhub"
	"InvestScout/internal/service/telegram"
	"InvestScout/internal/service/yahoo"
	"InvestScout/internal/usecase"
	"InvestScout/pkg/cache"
	pkgch "InvestScout/pkg/clickhouse"
	"InvestScout/pkg/config"
	xhttp "InvestScout/pkg/http"
	pkgkafka "InvestScout/pkg/kafka"
	applogger "InvestScout/pkg/logger"
	"InvestScout/pkg/metrics"
	"InvestScout/pkg/queue"
	"InvestScout/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisCache creates a Redis cache client, or nil when redis is
// disabled (in-memory only deployments).
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideCacheService builds the acquisition cache: layered memory+redis
// when redis is available, plain in-memory otherwise.
func ProvideCacheService(cfg *config.Config, rc *cache.RedisCache) cache.Service {
	if rc != nil {
		return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize))
	}
	return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
}

// ProvideMarketProviders assembles the provider fallback chains. Order
// within a class is fallback priority.
func ProvideMarketProviders(cfg *config.Config, lgr *applogger.Logger) []repository.MarketProvider {
	providers := []repository.MarketProvider{
		coingecko.New(cfg, lgr),
		coinpaprika.New(cfg, lgr),
		yahoo.New(cfg, lgr),
	}
	if cfg.Providers.Finnhub.Enabled {
		providers = append(providers, finnhub.New(cfg, lgr))
	}
	providers = append(providers, bonddata.New())
	return providers
}

// ProvideAcquirer creates the acquisition orchestrator.
func ProvideAcquirer(
	providers []repository.MarketProvider,
	cacheSvc cache.Service,
	cfg *config.Config,
	m repository.Metrics,
	lgr *applogger.Logger,
) *usecase.Acquirer {
	return usecase.NewAcquirer(providers, cacheSvc, cfg, m, lgr)
}

// ProvideRecommender wires the full pipeline.
func ProvideRecommender(
	acquirer *usecase.Acquirer,
	cfg *config.Config,
	m repository.Metrics,
	lgr *applogger.Logger,
) *usecase.Recommender {
	return usecase.NewRecommender(
		acquirer,
		usecase.NewFilter(cfg),
		usecase.NewScorer(),
		usecase.NewRationale(cfg),
		m,
		lgr,
	)
}

// ProvideNotifier creates the delivery channel, or nil when disabled.
func ProvideNotifier(cfg *config.Config, lgr *applogger.Logger) repository.Notifier {
	if !cfg.Delivery.Telegram.Enabled {
		return nil
	}
	return telegram.New(cfg, lgr)
}

// ProvideSinks builds the enabled recommendation sinks.
func ProvideSinks(cfg *config.Config, lgr *applogger.Logger) ([]repository.RecommendationSink, error) {
	var sinks []repository.RecommendationSink

	if cfg.Sinks.Kafka.Enabled {
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Sinks.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Sinks.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Sinks.Kafka.RequiredAcks),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		sinks = append(sinks, internalrepo.NewKafkaSink(producer, cfg.Sinks.Kafka.Topic))
	}

	if cfg.Sinks.ClickHouse.Enabled {
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.Sinks.ClickHouse.Host),
			pkgch.WithPort(cfg.Sinks.ClickHouse.Port),
			pkgch.WithDatabase(cfg.Sinks.ClickHouse.Database),
			pkgch.WithCredentials(cfg.Sinks.ClickHouse.User, cfg.Sinks.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.Sinks.ClickHouse.DialTimeout, 10*time.Second, 10*time.Second),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, internalrepo.Schema(cfg.Sinks.ClickHouse.Database)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}

		chSink := internalrepo.NewClickHouseSink(client, cfg.Sinks.ClickHouse.Database)
		chSink.SetLogger(lgr)
		sinks = append(sinks, chSink)
	}

	return sinks, nil
}

// ProvideDigest creates the digest builder.
func ProvideDigest(
	recommender *usecase.Recommender,
	notifier repository.Notifier,
	sinks []repository.RecommendationSink,
	cfg *config.Config,
	m repository.Metrics,
	lgr *applogger.Logger,
) *usecase.Digest {
	return usecase.NewDigest(recommender, notifier, sinks, cfg, m, lgr)
}

// ProvideQueue creates the Redis-backed job queue with the digest job
// registered, or nil when the queue is disabled.
func ProvideQueue(cfg *config.Config, rc *cache.RedisCache, digest *usecase.Digest, lgr *applogger.Logger) *queue.RedisQueue {
	if !cfg.Queue.Enabled || rc == nil {
		return nil
	}
	q := queue.NewRedisQueue(lgr, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, rc.Client(), queue.ModeProducerConsumer)
	q.RegisterJob(usecase.NewDigestJob(digest))
	q.RegisterJob(usecase.NewLogFlushJob(lgr))

	// Repeated error logs get aggregated and flushed through the queue as a
	// counted summary.
	lgr.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          usecase.LogFlushJobType,
		Publisher:      q,
	})
	return q
}

// ProvideScheduler creates the daily digest scheduler.
func ProvideScheduler(
	digest *usecase.Digest,
	q *queue.RedisQueue,
	cacheSvc cache.Service,
	cfg *config.Config,
	lgr *applogger.Logger,
) *usecase.Scheduler {
	var publisher queue.QueueService
	if q != nil {
		publisher = q
	}
	return usecase.NewScheduler(digest, publisher, cacheSvc, cfg, lgr)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(lgr *applogger.Logger, recommender *usecase.Recommender, digest *usecase.Digest) xhttp.Handler {
	return api.NewRecommendationsHandler(lgr, recommender, digest)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	lgr *applogger.Logger,
	handler xhttp.Handler,
	scheduler *usecase.Scheduler,
	q *queue.RedisQueue,
	sinks []repository.RecommendationSink,
) *server.App {
	return server.New(cfg, lgr, handler, scheduler, q, sinks)
}
