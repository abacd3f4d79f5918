package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/internal/client"
	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/crypto"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/server"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/tui"
	"github.com/MKhiriev/go-ferrari-store/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewClientLogger("ferrari-store-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := server.NotifyContext(context.Background())
	defer stop()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	sealer, err := crypto.NewTokenSealer(cfg.App.HashKey)
	if err != nil {
		log.Fatal().Err(err).Msg("create token sealer")
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, sealer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.DB.Close()

	services := service.NewClientServices(localStorage, serverAdapter, log)
	ui := tui.New(services, buildInfo, log)

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
