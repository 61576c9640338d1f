//go:build wireinject
// +build wireinject

package di

import (
	"GearValue/pkg/config"
	"GearValue/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Upstream and cache
		ProvideHTTPClient,
		ProvideWikiClient,
		ProvideCache,
		ProvidePriceSource,
		ProvideCatalog,

		// Use cases
		ProvideValuationUseCase,
		ProvideTimeseriesUseCase,

		// Delivery
		ProvideHTTPHandler,
		ProvideHTTPServer,
		ProvideSnapshotPublisher,
		ProvideScheduler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
