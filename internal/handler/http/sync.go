package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/internal/utils"
)

func (h *Handler) runSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	report, err := h.services.SyncService.SyncAll(ctx)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSyncInProgress):
			log.Info().Msg("sync already running")
			http.Error(w, service.ErrSyncInProgress.Error(), http.StatusConflict)
			return
		case errors.Is(err, config.ErrNotionNotConfigured):
			log.Err(err).Msg("notion is not configured")
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		default:
			log.Err(err).Msg("sync preflight failed")
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}

	log.Info().
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Bool("halted", report.Halted).
		Msg("sync pass finished")

	utils.WriteJSON(w, report, http.StatusOK)
}
