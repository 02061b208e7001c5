//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"svcmap/internal/app"
	"svcmap/internal/config"
	"svcmap/internal/http"
	"svcmap/internal/http/controller"
	"svcmap/internal/logging"
	"svcmap/internal/mapsync"
	"svcmap/internal/service/directory"
	"svcmap/internal/sse"
	"svcmap/internal/store"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		store.NewStore,
		mapsync.NewServerLayer,
		sse.NewHub,
		directory.NewService,
		controller.NewHandler,
		http.NewRouter,
		app.NewApp,
	)
	return &app.App{}, nil
}
