package store

import (
	"context"
	"strings"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
)

// Storages aggregates the repositories backed by one database connection.
type Storages struct {
	NoteStore   NoteStore
	ActionStore ActionStore
	MasterStore MasterStore

	db *DB
}

// NewStorages opens the notes database named by cfg.DB.DSN, picking the
// dialect from the DSN shape (postgres:// URLs get PostgreSQL, anything else
// is treated as a SQLite file path), runs pending migrations and seeds the
// master catalog.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)
	if isPostgresDSN(cfg.DB.DSN) {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error running migrations")
		db.Close()
		return nil, err
	}

	masters := NewMasterRepository(db)
	if err := masters.EnsureDefaults(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		NoteStore:   NewNoteRepository(db),
		ActionStore: NewActionRepository(db),
		MasterStore: masters,
		db:          db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
