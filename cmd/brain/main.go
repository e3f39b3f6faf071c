package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notion-brain/internal/adapter"
	"github.com/MKhiriev/notion-brain/internal/client"
	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/processor"
	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/internal/tui"
	"github.com/MKhiriev/notion-brain/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewAppLogger("notion-brain")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	notion := adapter.NewNotionAdapter(cfg.Notion, log)

	var proc processor.Processor
	if cfg.Processor.APIKey != "" {
		proc = processor.NewOpenAIProcessor(cfg.Processor, log)
	} else {
		proc = processor.NewNoopProcessor()
	}

	services := service.NewServices(storages, notion, proc, cfg, log)

	ui, err := tui.New(services, buildInfo)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("app run error")
	}
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
