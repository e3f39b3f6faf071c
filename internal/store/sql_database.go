package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/migrations"
)

// Supported database dialects.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// timeLayout is the storage format for timestamps. A fixed-width RFC3339
// variant (always 9 fractional digits, always UTC) so that lexicographic
// comparison in SQL matches chronological order on both dialects.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB wraps *sql.DB with the dialect it was opened for and a dialect-aware
// squirrel statement builder.
type DB struct {
	*sql.DB
	dialect string
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// Migrate applies all pending schema migrations for the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the dialect the connection was opened for
// ([DialectSQLite] or [DialectPostgres]).
func (db *DB) Dialect() string {
	return db.dialect
}

func newBuilder(dialect string) sq.StatementBuilderType {
	if dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
