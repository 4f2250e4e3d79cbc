//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/questlog/quest-service/config"
	"github.com/questlog/quest-service/data"
	"github.com/questlog/quest-service/handler"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/service"
)

// InitializeApp wires up the entire application with all dependencies.
func InitializeApp(cfgPath string) (*App, func(), error) {
	panic(wire.Build(
		// Config provider
		config.ProviderSet,

		// Logger provider
		logger.ProviderSet,

		// Data layer provider
		data.ProviderSet,

		// Service layer provider
		service.ProviderSet,

		// Handler layer provider
		handler.ProviderSet,

		// Application constructor
		NewApp,
	))
}
