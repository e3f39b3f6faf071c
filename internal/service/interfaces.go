package service

import (
	"context"

	"github.com/MKhiriev/notion-brain/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

// NoteService covers the capture side: turning raw text into a deduplicated
// local note and answering queries about stored notes.
type NoteService interface {
	// Create captures a draft: normalizes the text, computes the fingerprint,
	// derives a title, asks the processor for suggestions and persists the
	// note as pendiente. Returns a *store.DuplicateNoteError-wrapped error if
	// the same content from the same source was captured before.
	Create(ctx context.Context, draft models.NoteDraft) (models.Note, error)

	Get(ctx context.Context, id string) (models.Note, error)
	List(ctx context.Context) ([]models.Note, error)
	ListByStatus(ctx context.Context, status models.NoteStatus) ([]models.Note, error)

	// UpdateMetadata edits the typed properties of a note that has not been
	// sent yet.
	UpdateMetadata(ctx context.Context, id string, meta models.NoteMetadata) error
}

// ActionService tracks the follow-up actions attached to notes.
type ActionService interface {
	// ListPending returns the open actions, optionally filtered by area.
	ListPending(ctx context.Context, area string) ([]models.Action, error)

	// MarkDone completes an action and returns its final state. When the last
	// pending action of an already delivered note is completed, the note's
	// remote page is moved to its final status; that push is best-effort and
	// never fails the local completion.
	MarkDone(ctx context.Context, id string) (models.Action, error)
}

// SyncService delivers captured notes to Notion.
type SyncService interface {
	// SyncAll runs one sequential delivery pass over every eligible note.
	// At most one pass runs at a time; a second call while one is in flight
	// returns ErrSyncInProgress. A configuration or schema problem detected
	// before the first note aborts the whole run without touching the store.
	SyncAll(ctx context.Context) (models.SyncReport, error)
}

// MasterService governs the catalog of allowed select values and keeps the
// remote database's options in step with it.
type MasterService interface {
	Values(ctx context.Context, category string) ([]string, error)
	List(ctx context.Context, category string) ([]models.Master, error)
	Add(ctx context.Context, category, value string) error

	// Deactivate retires a value. Refused when the value is system-locked or
	// still referenced by open pages in Notion.
	Deactivate(ctx context.Context, category, value string) error

	// SyncSchema pushes the active values of every select-backed category to
	// the remote database's select options. Estado is skipped: its values are
	// status options managed in Notion itself.
	SyncSchema(ctx context.Context) error
}
