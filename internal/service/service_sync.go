// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/notion-brain/internal/adapter"
	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

type syncService struct {
	notes   store.NoteStore
	adapter adapter.NotionAdapter
	notion  config.Notion
	workers config.Workers
	logger  *logger.Logger

	// mu serialises sync passes: at most one SyncAll in flight.
	mu sync.Mutex
}

func NewSyncService(notes store.NoteStore, notionAdapter adapter.NotionAdapter, notionCfg config.Notion, workersCfg config.Workers, log *logger.Logger) SyncService {
	return &syncService{
		notes:   notes,
		adapter: notionAdapter,
		notion:  notionCfg,
		workers: workersCfg,
		logger:  log,
	}
}

// SyncAll delivers every eligible note, one at a time, oldest first.
//
// The pass is pre-flighted: configuration and remote schema are checked before
// any note is touched, so a misconfigured integration produces one actionable
// diagnostic instead of marking every note as failed. During the pass an
// individual failure only moves that note to error; an auth or schema failure
// additionally halts the remaining candidates, which are reported as skipped.
func (s *syncService) SyncAll(ctx context.Context) (models.SyncReport, error) {
	if !s.mu.TryLock() {
		return models.SyncReport{}, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	log := s.logger.GetChildLogger("func", "syncService.SyncAll")

	if err := s.notion.Validate(); err != nil {
		return models.SyncReport{}, err
	}
	if err := s.adapter.ValidateSchema(ctx); err != nil {
		return models.SyncReport{}, fmt.Errorf("validación previa de Notion: %w", err)
	}

	now := time.Now()
	candidates, err := s.notes.ListRetryable(ctx, now, s.workers.MaxUnknownAttempts)
	if err != nil {
		return models.SyncReport{}, fmt.Errorf("selección de notas pendientes: %w", err)
	}
	log.Info().Int("candidates", len(candidates)).Msg("sync pass started")

	var report models.SyncReport
	for i, note := range candidates {
		outcome, halt := s.deliver(ctx, note)
		report.Add(outcome)

		if halt {
			report.Halted = true
			report.HaltedBy = string(outcome.Class)
			for _, remaining := range candidates[i+1:] {
				report.Add(models.NoteOutcome{
					NoteID: remaining.ID,
					Kind:   models.OutcomeSkipped,
					Reason: "sincronización detenida: corrija la configuración de Notion",
				})
			}
			break
		}
	}

	log.Info().
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Bool("halted", report.Halted).
		Msg("sync pass finished")
	return report, nil
}

// deliver runs one delivery attempt for one note. The attempt counter is
// bumped durably before the remote call, so a crash between the two still
// leaves the attempt on record. halt is true for failures that require user
// intervention.
func (s *syncService) deliver(ctx context.Context, note models.Note) (outcome models.NoteOutcome, halt bool) {
	log := s.logger.GetChildLogger("note_id", note.ID)

	if err := s.notes.MarkAttemptStarted(ctx, note.ID); err != nil {
		log.Err(err).Msg("could not record delivery attempt")
		return models.NoteOutcome{
			NoteID: note.ID,
			Kind:   models.OutcomeFailed,
			Reason: fmt.Sprintf("registro del intento: %s", err),
			Class:  models.ErrorClassUnknown,
		}, false
	}

	pageID, err := s.adapter.CreatePage(ctx, note)
	if err != nil {
		class := adapter.Classify(err)

		var nextRetryAt *time.Time
		if class.Retryable() {
			at := time.Now().Add(s.workers.RetryDelay)
			nextRetryAt = &at
		}
		if markErr := s.notes.MarkError(ctx, note.ID, err.Error(), class, nextRetryAt); markErr != nil {
			log.Err(markErr).Msg("could not record delivery failure")
		}

		log.Warn().Str("class", string(class)).Err(err).Msg("delivery failed")
		return models.NoteOutcome{
			NoteID: note.ID,
			Kind:   models.OutcomeFailed,
			Reason: err.Error(),
			Class:  class,
		}, !class.Retryable()
	}

	if err := s.notes.MarkSent(ctx, note.ID, pageID); err != nil {
		// the page exists remotely; on restart the note is retried and may
		// produce a duplicate page, the accepted at-least-once tradeoff
		log.Err(err).Str("page_id", pageID).Msg("page created but local state not updated")
		return models.NoteOutcome{
			NoteID: note.ID,
			Kind:   models.OutcomeFailed,
			Reason: fmt.Sprintf("página %s creada pero no registrada localmente: %s", pageID, err),
			Class:  models.ErrorClassUnknown,
		}, false
	}

	log.Info().Str("page_id", pageID).Msg("nota enviada")
	return models.NoteOutcome{
		NoteID: note.ID,
		Kind:   models.OutcomeSent,
		PageID: pageID,
	}, false
}
