//go:build wireinject
// +build wireinject

package di

import (
	"FinDash/pkg/config"
	"FinDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideStorage,
		ProvideSnapshotCache,
		ProvideHTTPClient,

		// Repositories
		ProvideMarketClient,
		ProvideSnapshotSource,
		ProvidePreferenceStore,

		// Use cases
		ProvideDeriver,
		ProvideViewModel,
		ProvideHolder,
		ProvideHub,
		ProvideDashboardController,

		// Application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
