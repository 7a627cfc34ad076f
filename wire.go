//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/taskdesk/taskdesk/config"
	"github.com/taskdesk/taskdesk/data"
	"github.com/taskdesk/taskdesk/handler"
	"github.com/taskdesk/taskdesk/logger"
	"github.com/taskdesk/taskdesk/service"
)

// InitializeApp wires up the entire application with all dependencies.
func InitializeApp() (*App, func(), error) {
	panic(wire.Build(
		// Config provider
		config.ProviderSet,

		// Logger provider
		logger.ProviderSet,

		// Data layer provider
		data.NewData,

		// Service layer provider
		service.NewService,

		// Handler layer provider
		handler.NewHandler,

		// Application constructor
		NewApp,
	))
}
