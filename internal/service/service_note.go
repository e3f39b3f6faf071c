// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/fingerprint"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/processor"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

// maxDerivedTitleLen caps titles derived from the note body.
const maxDerivedTitleLen = 120

type noteService struct {
	notes     store.NoteStore
	actions   store.ActionStore
	processor processor.Processor
	defaults  config.Defaults
	logger    *logger.Logger
}

func NewNoteService(notes store.NoteStore, actions store.ActionStore, proc processor.Processor, defaults config.Defaults, log *logger.Logger) NoteService {
	return &noteService{
		notes:     notes,
		actions:   actions,
		processor: proc,
		defaults:  defaults,
		logger:    log,
	}
}

func (s *noteService) Create(ctx context.Context, draft models.NoteDraft) (models.Note, error) {
	log := s.logger.GetChildLogger("func", "noteService.Create")

	if strings.TrimSpace(draft.RawText) == "" {
		return models.Note{}, ErrEmptyText
	}
	if strings.TrimSpace(draft.Source) == "" {
		draft.Source = "manual"
	}

	normalized := fingerprint.Normalize(draft.RawText, draft.Source)
	sourceID := fingerprint.SourceID(draft.RawText, draft.Source)

	if strings.TrimSpace(draft.Title) == "" {
		draft.Title = deriveTitle(normalized)
	}

	// best-effort enrichment; a capture never fails because the processor does
	suggestion, err := s.processor.Suggest(ctx, normalized)
	if err != nil {
		log.Warn().Err(err).Msg("suggestion unavailable, capturing as typed")
		suggestion = models.Suggestion{}
	}
	applySuggestion(&draft, suggestion)
	s.applyDefaults(&draft)

	note, err := s.notes.InsertIfAbsent(ctx, draft, sourceID)
	if err != nil {
		return models.Note{}, err
	}

	s.registerActions(ctx, note)

	log.Info().Str("note_id", note.ID).Str("source", note.Source).Msg("nota capturada")
	return note, nil
}

// registerActions turns each line of the note's acciones field into a pending
// follow-up action. Best-effort: the note is already captured, a failed action
// row is only logged.
func (s *noteService) registerActions(ctx context.Context, note models.Note) {
	log := s.logger.GetChildLogger("func", "noteService.registerActions")

	for _, line := range strings.Split(note.Acciones, "\n") {
		description := strings.TrimSpace(line)
		if description == "" {
			continue
		}
		if _, err := s.actions.Create(ctx, note.ID, description, note.Area); err != nil {
			log.Warn().Err(err).Str("note_id", note.ID).Msg("failed to register action")
		}
	}
}

func (s *noteService) Get(ctx context.Context, id string) (models.Note, error) {
	return s.notes.Get(ctx, id)
}

func (s *noteService) List(ctx context.Context) ([]models.Note, error) {
	return s.notes.ListAll(ctx)
}

func (s *noteService) ListByStatus(ctx context.Context, status models.NoteStatus) ([]models.Note, error) {
	return s.notes.ListByStatus(ctx, status)
}

func (s *noteService) UpdateMetadata(ctx context.Context, id string, meta models.NoteMetadata) error {
	return s.notes.UpdateMetadata(ctx, id, meta)
}

// deriveTitle takes the first line of the normalized text, capped at
// maxDerivedTitleLen runes so a multibyte character is never cut in half.
func deriveTitle(normalized string) string {
	line, _, _ := strings.Cut(normalized, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "Sin título"
	}
	return truncateRunes(line, maxDerivedTitleLen)
}

// truncateRunes cuts s to at most max runes, on a rune boundary.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// applySuggestion fills only the fields the user left empty; what the user
// typed always wins.
func applySuggestion(draft *models.NoteDraft, suggestion models.Suggestion) {
	if strings.TrimSpace(draft.Tipo) == "" {
		draft.Tipo = suggestion.Tipo
	}
	if strings.TrimSpace(draft.Prioridad) == "" {
		draft.Prioridad = suggestion.Prioridad
	}
	if strings.TrimSpace(draft.Resumen) == "" {
		draft.Resumen = suggestion.Resumen
	}
	if strings.TrimSpace(draft.Acciones) == "" {
		draft.Acciones = strings.Join(suggestion.Acciones, "\n")
	}
}

func (s *noteService) applyDefaults(draft *models.NoteDraft) {
	if strings.TrimSpace(draft.Area) == "" {
		draft.Area = s.defaults.Area
	}
	if strings.TrimSpace(draft.Tipo) == "" {
		draft.Tipo = s.defaults.Tipo
	}
	if strings.TrimSpace(draft.Estado) == "" {
		draft.Estado = s.defaults.Estado
	}
	if strings.TrimSpace(draft.Prioridad) == "" {
		draft.Prioridad = s.defaults.Prioridad
	}
	if strings.TrimSpace(draft.Fecha) == "" {
		draft.Fecha = time.Now().Format("2006-01-02")
	}
}
