//go:build wireinject
// +build wireinject

package di

import (
	"InvestScout/pkg/config"
	"InvestScout/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Cache
		ProvideRedisCache,
		ProvideCacheService,

		// Pipeline
		ProvideMarketProviders,
		ProvideAcquirer,
		ProvideRecommender,

		// Delivery
		ProvideNotifier,
		ProvideSinks,
		ProvideDigest,
		ProvideQueue,
		ProvideScheduler,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
