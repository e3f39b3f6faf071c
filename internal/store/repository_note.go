// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/notion-brain/models"
)

// maxErrorReasonLen caps stored failure reasons so a pathological remote
// response cannot bloat the database.
const maxErrorReasonLen = 1000

var noteColumns = []string{
	"id", "source_id", "source", "title", "raw_text",
	"area", "tipo", "estado", "prioridad", "fecha", "resumen", "acciones",
	"status", "notion_page_id", "last_error", "last_error_class",
	"attempt_count", "next_retry_at", "created_at", "updated_at",
}

// NoteRepository persists notes and implements the status transitions of the
// local sync queue. All writes are single-statement and guarded in SQL, so a
// concurrent capture and sync pass cannot race a note into an invalid state.
type NoteRepository struct {
	db *DB
}

func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// InsertIfAbsent persists a new pendiente note for the given draft, keyed by
// sourceID. If the fingerprint is already present no write happens and a
// *DuplicateNoteError carrying the existing note's id is returned.
func (r *NoteRepository) InsertIfAbsent(ctx context.Context, draft models.NoteDraft, sourceID string) (models.Note, error) {
	log := r.db.logger.GetChildLogger("func", "NoteRepository.InsertIfAbsent")

	now := time.Now().UTC()
	note := models.Note{
		ID:        uuid.NewString(),
		SourceID:  sourceID,
		Source:    draft.Source,
		Title:     draft.Title,
		RawText:   draft.RawText,
		Area:      draft.Area,
		Tipo:      draft.Tipo,
		Estado:    draft.Estado,
		Prioridad: draft.Prioridad,
		Fecha:     draft.Fecha,
		Resumen:   draft.Resumen,
		Acciones:  draft.Acciones,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := r.db.builder.
		Insert("notes").
		Columns("id", "source_id", "source", "title", "raw_text",
			"area", "tipo", "estado", "prioridad", "fecha", "resumen", "acciones",
			"status", "attempt_count", "created_at", "updated_at").
		Values(note.ID, note.SourceID, note.Source, note.Title, note.RawText,
			note.Area, note.Tipo, note.Estado, note.Prioridad, note.Fecha, note.Resumen, note.Acciones,
			string(note.Status), 0, formatTime(now), formatTime(now)).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return models.Note{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			existing, getErr := r.GetBySourceID(ctx, sourceID)
			if getErr != nil {
				log.Err(getErr).Msg("duplicate detected but existing note lookup failed")
				return models.Note{}, &DuplicateNoteError{SourceID: sourceID}
			}
			log.Debug().Str("existing_id", existing.ID).Msg("duplicate note rejected")
			return models.Note{}, &DuplicateNoteError{ExistingID: existing.ID, SourceID: sourceID}
		}
		log.Err(err).Msg("failed to insert note")
		return models.Note{}, errors.Join(ErrExecutingStatement, err)
	}

	return note, nil
}

// Get returns a note by its id.
func (r *NoteRepository) Get(ctx context.Context, id string) (models.Note, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetBySourceID returns the note owning the given fingerprint.
func (r *NoteRepository) GetBySourceID(ctx context.Context, sourceID string) (models.Note, error) {
	return r.getByColumn(ctx, "source_id", sourceID)
}

func (r *NoteRepository) getByColumn(ctx context.Context, column, value string) (models.Note, error) {
	log := r.db.logger.GetChildLogger("func", "NoteRepository.getByColumn")

	query, args, err := r.db.builder.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{column: value}).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return models.Note{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str(column, value).Msg("failed to scan note row")
		return models.Note{}, err
	}

	return note, nil
}

// ListByStatus returns all notes with the given status, oldest capture first.
func (r *NoteRepository) ListByStatus(ctx context.Context, status models.NoteStatus) ([]models.Note, error) {
	return r.list(ctx, sq.Eq{"status": string(status)})
}

// ListAll returns every stored note, oldest capture first.
func (r *NoteRepository) ListAll(ctx context.Context) ([]models.Note, error) {
	return r.list(ctx, nil)
}

// ListRetryable returns the notes eligible for a delivery attempt at the given
// instant, oldest capture first:
//
//   - pendiente notes, always;
//   - error notes with a retryable class whose next_retry_at has passed
//     (or was never set), where unknown-class notes are additionally capped at
//     unknownCap total attempts.
//
// auth and schema failures are never returned: they stay parked until the user
// fixes the configuration and the notes go through a manual resync.
func (r *NoteRepository) ListRetryable(ctx context.Context, now time.Time, unknownCap int64) ([]models.Note, error) {
	retryDue := sq.Or{
		sq.Eq{"next_retry_at": nil},
		sq.LtOrEq{"next_retry_at": formatTime(now)},
	}
	classEligible := sq.Or{
		sq.Eq{"last_error_class": []string{
			string(models.ErrorClassNetwork),
			string(models.ErrorClassRateLimited),
		}},
		sq.And{
			sq.Eq{"last_error_class": string(models.ErrorClassUnknown)},
			sq.Lt{"attempt_count": unknownCap},
		},
	}

	return r.list(ctx, sq.Or{
		sq.Eq{"status": string(models.StatusPending)},
		sq.And{
			sq.Eq{"status": string(models.StatusError)},
			retryDue,
			classEligible,
		},
	})
}

func (r *NoteRepository) list(ctx context.Context, where any) ([]models.Note, error) {
	log := r.db.logger.GetChildLogger("func", "NoteRepository.list")

	builder := r.db.builder.
		Select(noteColumns...).
		From("notes").
		OrderBy("created_at ASC", "id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("error executing sql query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Err(err).Msg("failed to scan note row")
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Msg("error iterating note rows")
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return notes, nil
}

// MarkAttemptStarted durably increments the note's attempt counter. Called
// before the remote call of every delivery attempt, and the only place the
// counter changes, so a crash mid-attempt still leaves the attempt recorded.
func (r *NoteRepository) MarkAttemptStarted(ctx context.Context, id string) error {
	return r.guardedUpdate(ctx, id, []setClause{
		{"attempt_count", sq.Expr("attempt_count + 1")},
		{"updated_at", formatTime(time.Now().UTC())},
	})
}

// MarkSent transitions a note to enviado and records the created Notion page.
// The error bookkeeping from previous failed attempts is cleared.
func (r *NoteRepository) MarkSent(ctx context.Context, id string, pageID string) error {
	return r.guardedUpdate(ctx, id, []setClause{
		{"status", string(models.StatusSent)},
		{"notion_page_id", pageID},
		{"last_error", nil},
		{"last_error_class", nil},
		{"next_retry_at", nil},
		{"updated_at", formatTime(time.Now().UTC())},
	})
}

// MarkError transitions a note to error, recording why the attempt failed and
// when the note becomes eligible again. A nil nextRetryAt means eligibility is
// governed by the class alone. Reasons are truncated to a sane length.
func (r *NoteRepository) MarkError(ctx context.Context, id string, reason string, class models.ErrorClass, nextRetryAt *time.Time) error {
	reason = truncateReason(reason)

	var retryAt any
	if nextRetryAt != nil {
		retryAt = formatTime(*nextRetryAt)
	}

	return r.guardedUpdate(ctx, id, []setClause{
		{"status", string(models.StatusError)},
		{"last_error", reason},
		{"last_error_class", string(class)},
		{"next_retry_at", retryAt},
		{"updated_at", formatTime(time.Now().UTC())},
	})
}

// UpdateMetadata replaces the user-editable typed properties of a note.
func (r *NoteRepository) UpdateMetadata(ctx context.Context, id string, meta models.NoteMetadata) error {
	return r.guardedUpdate(ctx, id, []setClause{
		{"title", meta.Title},
		{"area", meta.Area},
		{"tipo", meta.Tipo},
		{"estado", meta.Estado},
		{"prioridad", meta.Prioridad},
		{"fecha", meta.Fecha},
		{"updated_at", formatTime(time.Now().UTC())},
	})
}

// truncateReason caps a failure reason at maxErrorReasonLen runes, cutting on
// a rune boundary so the stored text stays valid UTF-8.
func truncateReason(reason string) string {
	if utf8.RuneCountInString(reason) <= maxErrorReasonLen {
		return reason
	}
	return string([]rune(reason)[:maxErrorReasonLen])
}

type setClause struct {
	column string
	value  any
}

// guardedUpdate applies the given column set to a note unless it has already
// been sent. The immutability guard lives in the WHERE clause so it holds even
// with concurrent writers.
func (r *NoteRepository) guardedUpdate(ctx context.Context, id string, sets []setClause) error {
	log := r.db.logger.GetChildLogger("func", "NoteRepository.guardedUpdate")

	builder := r.db.builder.Update("notes")
	for _, s := range sets {
		builder = builder.Set(s.column, s.value)
	}
	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"status": string(models.StatusSent)}).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("note_id", id).Msg("failed to execute statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("note_id", id).Msg("failed to read affected rows")
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		// distinguish a missing note from a frozen one
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("nota %s: %w", id, ErrInvalidTransition)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var (
		note        models.Note
		status      string
		pageID      sql.NullString
		lastErr     sql.NullString
		lastClass   sql.NullString
		nextRetryAt sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(
		&note.ID, &note.SourceID, &note.Source, &note.Title, &note.RawText,
		&note.Area, &note.Tipo, &note.Estado, &note.Prioridad, &note.Fecha, &note.Resumen, &note.Acciones,
		&status, &pageID, &lastErr, &lastClass,
		&note.AttemptCount, &nextRetryAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.Note{}, err
	}

	note.Status = models.NoteStatus(status)
	note.NotionPageID = pageID.String
	note.LastError = lastErr.String
	note.LastErrorClass = models.ErrorClass(lastClass.String)
	if nextRetryAt.Valid {
		t := parseTime(nextRetryAt.String)
		note.NextRetryAt = &t
	}
	note.CreatedAt = parseTime(createdAt)
	note.UpdatedAt = parseTime(updatedAt)

	return note, nil
}
