package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/models"
)

func newTestNoteRepo(t *testing.T) (*NoteRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := NewNoteRepository(&DB{
		DB:      db,
		dialect: DialectSQLite,
		builder: newBuilder(DialectSQLite),
		logger:  l,
	})
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func noteRows(notes ...models.Note) *sqlmock.Rows {
	rows := sqlmock.NewRows(noteColumns)
	for _, n := range notes {
		var pageID, lastErr, lastClass, nextRetryAt any
		if n.NotionPageID != "" {
			pageID = n.NotionPageID
		}
		if n.LastError != "" {
			lastErr = n.LastError
		}
		if n.LastErrorClass != "" {
			lastClass = string(n.LastErrorClass)
		}
		if n.NextRetryAt != nil {
			nextRetryAt = formatTime(*n.NextRetryAt)
		}
		rows.AddRow(
			n.ID, n.SourceID, n.Source, n.Title, n.RawText,
			n.Area, n.Tipo, n.Estado, n.Prioridad, n.Fecha, n.Resumen, n.Acciones,
			string(n.Status), pageID, lastErr, lastClass,
			n.AttemptCount, nextRetryAt, formatTime(n.CreatedAt), formatTime(n.UpdatedAt),
		)
	}
	return rows
}

func TestInsertIfAbsent_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	draft := models.NoteDraft{
		RawText: "llamar al proveedor",
		Source:  "manual",
		Title:   "llamar al proveedor",
		Area:    "General",
	}

	mock.ExpectExec("INSERT INTO notes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	note, err := repo.InsertIfAbsent(ctx, draft, "fp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.ID == "" {
		t.Error("expected a generated note id")
	}
	if note.Status != models.StatusPending {
		t.Errorf("expected status pendiente, got %s", note.Status)
	}
	if note.SourceID != "fp-1" {
		t.Errorf("expected source_id fp-1, got %s", note.SourceID)
	}
	if note.AttemptCount != 0 {
		t.Errorf("expected attempt_count 0, got %d", note.AttemptCount)
	}
}

func TestInsertIfAbsent_Duplicate(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	existing := models.Note{
		ID:        "existing-id",
		SourceID:  "fp-1",
		Source:    "manual",
		Status:    models.StatusSent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO notes").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("fp-1").
		WillReturnRows(noteRows(existing))

	_, err := repo.InsertIfAbsent(ctx, models.NoteDraft{RawText: "x", Source: "manual"}, "fp-1")
	if !errors.Is(err, ErrDuplicateNote) {
		t.Fatalf("expected ErrDuplicateNote, got %v", err)
	}

	var dup *DuplicateNoteError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateNoteError, got %T", err)
	}
	if dup.ExistingID != "existing-id" {
		t.Errorf("expected existing id of the duplicate, got %q", dup.ExistingID)
	}
}

func TestInsertIfAbsent_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO notes").
		WillReturnError(errors.New("db network error"))

	_, err := repo.InsertIfAbsent(context.Background(), models.NoteDraft{RawText: "x", Source: "manual"}, "fp-1")
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	retryAt := now.Add(time.Minute)
	stored := models.Note{
		ID:             "note-1",
		SourceID:       "fp-1",
		Source:         "email_pegado",
		Title:          "Incidencia impresora",
		RawText:        "la impresora no responde",
		Status:         models.StatusError,
		LastError:      "timeout",
		LastErrorClass: models.ErrorClassNetwork,
		AttemptCount:   2,
		NextRetryAt:    &retryAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("note-1").
		WillReturnRows(noteRows(stored))

	note, err := repo.Get(context.Background(), "note-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.LastErrorClass != models.ErrorClassNetwork {
		t.Errorf("expected network error class, got %s", note.LastErrorClass)
	}
	if note.NextRetryAt == nil || !note.NextRetryAt.Equal(retryAt) {
		t.Errorf("expected next_retry_at %v, got %v", retryAt, note.NextRetryAt)
	}
	if note.AttemptCount != 2 {
		t.Errorf("expected attempt_count 2, got %d", note.AttemptCount)
	}
}

func TestListRetryable_OrdersOldestFirst(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	older := models.Note{ID: "a", SourceID: "fp-a", Status: models.StatusPending, CreatedAt: now.Add(-time.Hour), UpdatedAt: now}
	newer := models.Note{ID: "b", SourceID: "fp-b", Status: models.StatusPending, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WillReturnRows(noteRows(older, newer))

	notes, err := repo.ListRetryable(context.Background(), now, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != "a" || notes[1].ID != "b" {
		t.Errorf("expected FIFO order a,b got %s,%s", notes[0].ID, notes[1].ID)
	}
}

func TestListRetryable_QueryShape(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// pendiente always; error only with a retryable class whose delay passed,
	// unknown additionally capped by attempts
	mock.ExpectQuery(`status = \? OR \(status = \? AND \(next_retry_at IS NULL OR next_retry_at <= \?\)`).
		WithArgs(
			string(models.StatusPending),
			string(models.StatusError),
			formatTime(now),
			string(models.ErrorClassNetwork),
			string(models.ErrorClassRateLimited),
			string(models.ErrorClassUnknown),
			int64(5),
		).
		WillReturnRows(noteRows())

	_, err := repo.ListRetryable(context.Background(), now, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkAttemptStarted_IncrementsInSQL(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE notes SET attempt_count = attempt_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkAttemptStarted(context.Background(), "note-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkSent_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE notes").
		WithArgs(
			string(models.StatusSent), "page-123",
			nil, nil, nil,
			sqlmock.AnyArg(), // updated_at
			"note-1", string(models.StatusSent),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkSent(context.Background(), "note-1", "page-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarkSent_AlreadySent(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	sent := models.Note{
		ID:           "note-1",
		SourceID:     "fp-1",
		Status:       models.StatusSent,
		NotionPageID: "page-123",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec("UPDATE notes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("note-1").
		WillReturnRows(noteRows(sent))

	err := repo.MarkSent(context.Background(), "note-1", "page-456")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestMarkSent_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE notes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	err := repo.MarkSent(context.Background(), "missing", "page-123")
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestMarkError_TruncatesReason(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	longReason := strings.Repeat("x", maxErrorReasonLen+500)
	retryAt := time.Date(2026, 8, 30, 12, 1, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE notes").
		WithArgs(
			string(models.StatusError),
			strings.Repeat("x", maxErrorReasonLen),
			string(models.ErrorClassNetwork),
			formatTime(retryAt),
			sqlmock.AnyArg(), // updated_at
			"note-1", string(models.StatusSent),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkError(context.Background(), "note-1", longReason, models.ErrorClassNetwork, &retryAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkError_TruncatesMultibyteReasonOnRuneBoundary(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	// two-byte runes: a byte-based cut at maxErrorReasonLen would split one
	longReason := strings.Repeat("ñ", maxErrorReasonLen+10)
	retryAt := time.Date(2026, 8, 30, 12, 1, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE notes").
		WithArgs(
			string(models.StatusError),
			strings.Repeat("ñ", maxErrorReasonLen),
			string(models.ErrorClassNetwork),
			formatTime(retryAt),
			sqlmock.AnyArg(), // updated_at
			"note-1", string(models.StatusSent),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkError(context.Background(), "note-1", longReason, models.ErrorClassNetwork, &retryAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkError_NilRetryAt(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE notes").
		WithArgs(
			string(models.StatusError),
			"token inválido",
			string(models.ErrorClassAuth),
			nil,
			sqlmock.AnyArg(),
			"note-1", string(models.StatusSent),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkError(context.Background(), "note-1", "token inválido", models.ErrorClassAuth, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateMetadata_FrozenOnceSent(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	sent := models.Note{ID: "note-1", SourceID: "fp-1", Status: models.StatusSent, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("UPDATE notes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs("note-1").
		WillReturnRows(noteRows(sent))

	err := repo.UpdateMetadata(context.Background(), "note-1", models.NoteMetadata{Title: "nuevo título"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestListByStatus_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	pending := models.Note{ID: "a", SourceID: "fp-a", Status: models.StatusPending, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WithArgs(string(models.StatusPending)).
		WillReturnRows(noteRows(pending))

	notes, err := repo.ListByStatus(context.Background(), models.StatusPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "a" {
		t.Errorf("expected single note a, got %+v", notes)
	}
}
