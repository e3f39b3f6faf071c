// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NoteStatus is the local synchronization state of a captured note.
// The string values are kept compatible with the original desktop app
// database, so an existing notes file keeps working after an upgrade.
type NoteStatus string

const (
	// StatusPending marks a note that has been captured locally but not yet
	// delivered to Notion.
	StatusPending NoteStatus = "pendiente"

	// StatusSent marks a note that has been delivered. Terminal: a sent note
	// is never mutated again by the sync engine.
	StatusSent NoteStatus = "enviado"

	// StatusError marks a note whose last delivery attempt failed. Not
	// terminal: depending on the error class the note may be retried.
	StatusError NoteStatus = "error"
)

// ErrorClass buckets a failed delivery by what has to happen before the note
// can be sent: nothing (transient), waiting (rate limit), or the user fixing
// their configuration.
type ErrorClass string

const (
	ErrorClassAuth        ErrorClass = "auth"
	ErrorClassSchema      ErrorClass = "schema"
	ErrorClassNetwork     ErrorClass = "network"
	ErrorClassRateLimited ErrorClass = "rate_limited"
	ErrorClassUnknown     ErrorClass = "unknown"
)

// Retryable reports whether the sync engine may retry a note that failed with
// this class without the user changing anything. Unknown errors are retryable
// too, but only up to a configured attempt cap.
func (c ErrorClass) Retryable() bool {
	switch c {
	case ErrorClassNetwork, ErrorClassRateLimited, ErrorClassUnknown:
		return true
	default:
		return false
	}
}

// NoteDraft is the input payload for capturing a note. RawText and Source are
// mandatory; empty Tipo/Prioridad/Resumen/Acciones may be filled in from
// processor suggestions, empty Title from the first normalized line.
type NoteDraft struct {
	RawText   string `json:"raw_text"`
	Source    string `json:"source"`
	Title     string `json:"title"`
	Area      string `json:"area"`
	Tipo      string `json:"tipo"`
	Estado    string `json:"estado"`
	Prioridad string `json:"prioridad"`
	Fecha     string `json:"fecha"`
	Resumen   string `json:"resumen"`
	Acciones  string `json:"acciones"`
}

// Note is the persisted note entity.
//
// SourceID is the deduplication key: a SHA-256 fingerprint of the normalized
// text plus the source tag, unique across the whole store. NotionPageID is
// set if and only if Status is StatusSent. AttemptCount is incremented once
// per delivery attempt, before the remote call is made, and never reset.
type Note struct {
	ID             string     `json:"id"`
	SourceID       string     `json:"source_id"`
	Source         string     `json:"source"`
	Title          string     `json:"title"`
	RawText        string     `json:"raw_text"`
	Area           string     `json:"area"`
	Tipo           string     `json:"tipo"`
	Estado         string     `json:"estado"`
	Prioridad      string     `json:"prioridad"`
	Fecha          string     `json:"fecha"`
	Resumen        string     `json:"resumen"`
	Acciones       string     `json:"acciones"`
	Status         NoteStatus `json:"status"`
	NotionPageID   string     `json:"notion_page_id,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	LastErrorClass ErrorClass `json:"last_error_class,omitempty"`
	AttemptCount   int64      `json:"attempt_count"`
	NextRetryAt    *time.Time `json:"next_retry_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NoteMetadata carries the user-editable typed properties of a note. Editable
// only while the note is still pendiente or error; once sent the note is
// frozen locally.
type NoteMetadata struct {
	Title     string `json:"title"`
	Area      string `json:"area"`
	Tipo      string `json:"tipo"`
	Estado    string `json:"estado"`
	Prioridad string `json:"prioridad"`
	Fecha     string `json:"fecha"`
}
