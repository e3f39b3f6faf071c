package client

import (
	"context"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/handler/http"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/server"
	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/internal/tui"
	"github.com/MKhiriev/notion-brain/internal/workers"
	"github.com/MKhiriev/notion-brain/models"
)

type App struct {
	cfg       *config.StructuredConfig
	services  *service.Services
	tui       *tui.TUI
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	return &App{
		cfg:       cfg,
		services:  services,
		tui:       ui,
		buildInfo: buildInfo,
		logger:    log,
	}, nil
}

// Run starts the background sync worker and the optional capture API, then
// hands the terminal to the TUI and blocks until the user quits.
func (a *App) Run() error {
	ctx := context.Background()

	syncWorker := workers.NewSyncWorker(a.services.SyncService, a.cfg.Workers.SyncInterval, a.logger)
	workers.NewWorkers(syncWorker).Run()
	defer syncWorker.Stop()

	if a.cfg.Server.HTTPAddress != "" {
		handlers := http.NewHandler(a.services, a.cfg.Server, a.buildInfo, a.logger)
		srv, err := server.NewServer(handlers, a.cfg.Server, a.logger)
		if err != nil {
			return err
		}
		go srv.RunServer()
		defer srv.Shutdown()
	}

	return a.tui.MainLoop(ctx)
}
