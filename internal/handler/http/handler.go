// Package http implements the local capture API of the application.
// It provides middleware and route handlers for capturing notes, querying
// the queue and triggering a sync pass over HTTP, so external tools
// (shortcuts, scripts, browser extensions) can feed the inbox without
// going through the TUI. Authentication, logging and tracing concerns
// are all handled at this layer before requests are forwarded to the
// service layer.
package http

import (
	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/models"
)

type Handler struct {
	services  *service.Services
	cfg       config.Server
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		cfg:       cfg,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
