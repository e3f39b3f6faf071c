package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateNote is returned when an insert targets a source_id that
	// already exists in the notes table. The insert is rejected, never turned
	// into an overwrite or a merge.
	ErrDuplicateNote = errors.New("nota duplicada")

	// ErrNoteNotFound is returned when a query or update targets a note id
	// that does not exist in the database.
	ErrNoteNotFound = errors.New("nota no encontrada")

	// ErrInvalidTransition is returned when a status update targets a note
	// that is already enviado. Sent notes are immutable.
	ErrInvalidTransition = errors.New("la nota ya fue enviada")

	// ErrActionNotFound is returned when a query or update targets an action
	// id that does not exist in the database.
	ErrActionNotFound = errors.New("acción no encontrada")

	// ErrMasterLocked is returned when deactivation targets a master value
	// seeded and locked by the system.
	ErrMasterLocked = errors.New("el maestro está bloqueado por el sistema")

	// ErrMasterNotFound is returned when a master (category, value) pair does
	// not exist.
	ErrMasterNotFound = errors.New("maestro no encontrado")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan note row")
)

// DuplicateNoteError is returned by InsertIfAbsent when the fingerprint is
// already present. It carries the identity of the note that owns the
// fingerprint so the caller can point the user at the existing capture.
// Matches [ErrDuplicateNote] via errors.Is.
type DuplicateNoteError struct {
	ExistingID string
	SourceID   string
}

func (e *DuplicateNoteError) Error() string {
	return fmt.Sprintf("nota duplicada: source_id %s ya registrado en la nota %s", e.SourceID, e.ExistingID)
}

func (e *DuplicateNoteError) Unwrap() error {
	return ErrDuplicateNote
}
