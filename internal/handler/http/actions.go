package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/internal/utils"
	"github.com/MKhiriev/notion-brain/models"
)

func (h *Handler) listActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	area := r.URL.Query().Get("area")

	actions, err := h.services.ActionService.ListPending(ctx, area)
	if err != nil {
		log.Err(err).Msg("error listing pending actions")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if actions == nil {
		actions = []models.Action{}
	}
	utils.WriteJSON(w, actions, http.StatusOK)
}

func (h *Handler) completeAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	action, err := h.services.ActionService.MarkDone(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrActionNotFound) {
			http.Error(w, store.ErrActionNotFound.Error(), http.StatusNotFound)
			return
		}
		log.Err(err).Str("id", id).Msg("error completing action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, action, http.StatusOK)
}
