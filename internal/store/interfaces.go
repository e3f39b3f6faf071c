package store

import (
	"context"
	"time"

	"github.com/MKhiriev/notion-brain/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

// NoteStore is the persistence contract of the local sync queue.
type NoteStore interface {
	InsertIfAbsent(ctx context.Context, draft models.NoteDraft, sourceID string) (models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	GetBySourceID(ctx context.Context, sourceID string) (models.Note, error)
	ListByStatus(ctx context.Context, status models.NoteStatus) ([]models.Note, error)
	ListAll(ctx context.Context) ([]models.Note, error)
	ListRetryable(ctx context.Context, now time.Time, unknownCap int64) ([]models.Note, error)
	MarkAttemptStarted(ctx context.Context, id string) error
	MarkSent(ctx context.Context, id string, pageID string) error
	MarkError(ctx context.Context, id string, reason string, class models.ErrorClass, nextRetryAt *time.Time) error
	UpdateMetadata(ctx context.Context, id string, meta models.NoteMetadata) error
}

// ActionStore is the persistence contract of the per-note follow-up actions.
type ActionStore interface {
	Create(ctx context.Context, noteID, description, area string) (models.Action, error)
	Get(ctx context.Context, id string) (models.Action, error)
	ListPending(ctx context.Context, area string) ([]models.Action, error)
	MarkDone(ctx context.Context, id string) error
	PendingCountByNote(ctx context.Context, noteID string) (int64, error)
}

// MasterStore is the persistence contract of the select-value catalog.
type MasterStore interface {
	EnsureDefaults(ctx context.Context) error
	ListActive(ctx context.Context, category string) ([]string, error)
	ListAll(ctx context.Context, category string) ([]models.Master, error)
	Add(ctx context.Context, category, value string) error
	Deactivate(ctx context.Context, category, value string) error
}
