package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/internal/utils"
	"github.com/MKhiriev/notion-brain/models"
)

// duplicateResponse is the body of a 409 answer to a duplicate capture. The
// id of the already stored note lets the caller link to it instead of
// retrying.
type duplicateResponse struct {
	Error      string `json:"error"`
	ExistingID string `json:"existing_id"`
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var draft models.NoteDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.Create(ctx, draft)
	if err != nil {
		var dup *store.DuplicateNoteError
		switch {
		case errors.Is(err, service.ErrEmptyText):
			log.Err(err).Msg("empty note rejected")
			http.Error(w, service.ErrEmptyText.Error(), http.StatusBadRequest)
			return
		case errors.As(err, &dup):
			log.Info().Str("existing_id", dup.ExistingID).Msg("duplicate capture ignored")
			utils.WriteJSON(w, duplicateResponse{Error: store.ErrDuplicateNote.Error(), ExistingID: dup.ExistingID}, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during note capture")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var (
		notes []models.Note
		err   error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		notes, err = h.services.NoteService.ListByStatus(ctx, models.NoteStatus(status))
	} else {
		notes, err = h.services.NoteService.List(ctx)
	}
	if err != nil {
		log.Err(err).Msg("error listing notes")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if notes == nil {
		notes = []models.Note{}
	}
	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	note, err := h.services.NoteService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			http.Error(w, store.ErrNoteNotFound.Error(), http.StatusNotFound)
			return
		}
		log.Err(err).Str("id", id).Msg("error loading note")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}
