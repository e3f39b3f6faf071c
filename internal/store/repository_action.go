// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/notion-brain/models"
)

var actionColumns = []string{
	"id", "note_id", "description", "area", "status", "created_at", "completed_at",
}

// ActionRepository persists the follow-up actions extracted from notes.
type ActionRepository struct {
	db *DB
}

func NewActionRepository(db *DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// Create registers a new pendiente action for a note.
func (r *ActionRepository) Create(ctx context.Context, noteID, description, area string) (models.Action, error) {
	log := r.db.logger.GetChildLogger("func", "ActionRepository.Create")

	description = strings.TrimSpace(description)
	if description == "" {
		return models.Action{}, fmt.Errorf("la descripción de la acción no puede estar vacía")
	}

	now := time.Now().UTC()
	action := models.Action{
		ID:          uuid.NewString(),
		NoteID:      noteID,
		Description: description,
		Area:        area,
		Status:      models.ActionPending,
		CreatedAt:   now,
	}

	query, args, err := r.db.builder.
		Insert("actions").
		Columns("id", "note_id", "description", "area", "status", "created_at").
		Values(action.ID, action.NoteID, action.Description, action.Area,
			string(action.Status), formatTime(now)).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return models.Action{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("note_id", noteID).Msg("failed to insert action")
		return models.Action{}, errors.Join(ErrExecutingStatement, err)
	}

	return action, nil
}

// Get returns an action by its id.
func (r *ActionRepository) Get(ctx context.Context, id string) (models.Action, error) {
	log := r.db.logger.GetChildLogger("func", "ActionRepository.Get")

	query, args, err := r.db.builder.
		Select(actionColumns...).
		From("actions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return models.Action{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	action, err := scanAction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Action{}, ErrActionNotFound
		}
		log.Err(err).Str("action_id", id).Msg("failed to scan action row")
		return models.Action{}, err
	}

	return action, nil
}

// ListPending returns the open actions, newest first. An empty area returns
// every pending action; otherwise only those of the given area.
func (r *ActionRepository) ListPending(ctx context.Context, area string) ([]models.Action, error) {
	log := r.db.logger.GetChildLogger("func", "ActionRepository.ListPending")

	where := sq.Eq{"status": string(models.ActionPending)}
	if area != "" {
		where["area"] = area
	}

	query, args, err := r.db.builder.
		Select(actionColumns...).
		From("actions").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
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

	var actions []models.Action
	for rows.Next() {
		action, err := scanAction(rows)
		if err != nil {
			log.Err(err).Msg("failed to scan action row")
			return nil, errors.Join(ErrScanningRow, err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return actions, nil
}

// MarkDone completes an action. Completing an already done action is a no-op;
// an unknown id returns ErrActionNotFound.
func (r *ActionRepository) MarkDone(ctx context.Context, id string) error {
	log := r.db.logger.GetChildLogger("func", "ActionRepository.MarkDone")

	query, args, err := r.db.builder.
		Update("actions").
		Set("status", string(models.ActionDone)).
		Set("completed_at", formatTime(time.Now().UTC())).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"status": string(models.ActionDone)}).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("action_id", id).Msg("failed to execute statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return getErr
		}
		// already done
		return nil
	}

	return nil
}

// PendingCountByNote counts the open actions of one note.
func (r *ActionRepository) PendingCountByNote(ctx context.Context, noteID string) (int64, error) {
	log := r.db.logger.GetChildLogger("func", "ActionRepository.PendingCountByNote")

	query, args, err := r.db.builder.
		Select("COUNT(1)").
		From("actions").
		Where(sq.Eq{"note_id": noteID, "status": string(models.ActionPending)}).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("note_id", noteID).Msg("failed to count pending actions")
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	return count, nil
}

func scanAction(row rowScanner) (models.Action, error) {
	var (
		action      models.Action
		status      string
		createdAt   string
		completedAt sql.NullString
	)

	err := row.Scan(
		&action.ID, &action.NoteID, &action.Description, &action.Area,
		&status, &createdAt, &completedAt,
	)
	if err != nil {
		return models.Action{}, err
	}

	action.Status = models.ActionStatus(status)
	action.CreatedAt = parseTime(createdAt)
	if completedAt.Valid {
		t := parseTime(completedAt.String)
		action.CompletedAt = &t
	}

	return action, nil
}
