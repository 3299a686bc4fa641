package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/connectivity"
	"github.com/MKhiriev/go-field-sync/internal/handler"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/server"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fieldsyncd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	monitor := connectivity.NewMonitor(cfg.Gateway, cfg.Sync.ProbeInterval, log)

	gateway, err := adapter.NewHTTPSubmissionGateway(cfg.Gateway, cfg.App.DeviceID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating submission gateway")
	}
	notifier, err := adapter.NewHTTPNotifier(cfg.Gateway, cfg.App.DeviceID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notifier")
	}

	services := service.NewServices(*storages, gateway, notifier, monitor, *cfg, log)

	handlers, err := handler.NewHandlers(services, monitor, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.New(log,
		monitor,
		workers.Func(services.SyncService.Start),
	)
	go background.Run(ctx)

	srv, err := server.NewServer(handlers, cfg.Server, cancel, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
