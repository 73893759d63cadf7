//go:build wireinject
// +build wireinject

package main

import (
	"pattamap/config"
	"pattamap/internal/cache"
	"pattamap/internal/command"
	"pattamap/internal/cron"
	"pattamap/internal/database"
	"pattamap/internal/handler"
	"pattamap/internal/middleware"
	"pattamap/internal/router"
	"pattamap/internal/service"
	"pattamap/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			telemetry.ProviderSet,
			database.ProviderSet,
			cache.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			telemetry.ProviderSet,
			database.ProviderSet,
			cache.ProviderSet,
			service.ProviderSet,
			command.ProviderSet,
		),
	)
}
