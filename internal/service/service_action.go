// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/notion-brain/internal/adapter"
	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

// finalStatusName closes a remote page once every action of its note is done.
const finalStatusName = "Finalizado"

type actionService struct {
	actions store.ActionStore
	notes   store.NoteStore
	adapter adapter.NotionAdapter
	notion  config.Notion
	logger  *logger.Logger
}

func NewActionService(actions store.ActionStore, notes store.NoteStore, notionAdapter adapter.NotionAdapter, notionCfg config.Notion, log *logger.Logger) ActionService {
	return &actionService{
		actions: actions,
		notes:   notes,
		adapter: notionAdapter,
		notion:  notionCfg,
		logger:  log,
	}
}

func (s *actionService) ListPending(ctx context.Context, area string) ([]models.Action, error) {
	return s.actions.ListPending(ctx, area)
}

func (s *actionService) MarkDone(ctx context.Context, id string) (models.Action, error) {
	log := s.logger.GetChildLogger("func", "actionService.MarkDone")

	if err := s.actions.MarkDone(ctx, id); err != nil {
		return models.Action{}, err
	}

	action, err := s.actions.Get(ctx, id)
	if err != nil {
		return models.Action{}, err
	}

	s.finalizeNoteIfDone(ctx, log, action.NoteID)

	log.Info().Str("action_id", action.ID).Str("note_id", action.NoteID).Msg("acción completada")
	return action, nil
}

// finalizeNoteIfDone pushes the final status to the note's remote page once no
// pending action remains. Only delivered notes have a page; any failure here is
// logged and swallowed, the local completion already happened.
func (s *actionService) finalizeNoteIfDone(ctx context.Context, log *logger.Logger, noteID string) {
	pending, err := s.actions.PendingCountByNote(ctx, noteID)
	if err != nil || pending > 0 {
		if err != nil {
			log.Warn().Err(err).Str("note_id", noteID).Msg("pending action count unavailable")
		}
		return
	}

	note, err := s.notes.Get(ctx, noteID)
	if err != nil {
		if !errors.Is(err, store.ErrNoteNotFound) {
			log.Warn().Err(err).Str("note_id", noteID).Msg("note lookup failed")
		}
		return
	}
	if note.NotionPageID == "" || s.notion.Validate() != nil {
		return
	}

	if err := s.adapter.UpdatePageStatus(ctx, note.NotionPageID, finalStatusName); err != nil {
		log.Warn().Err(err).Str("note_id", noteID).Str("page_id", note.NotionPageID).
			Msg("failed to close remote page")
		return
	}

	log.Info().Str("note_id", noteID).Str("page_id", note.NotionPageID).Msg("remote page closed")
}
