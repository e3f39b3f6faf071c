// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter wraps the Notion REST API behind a small capability
// interface.
//
// The primary abstraction is [NotionAdapter]; the package ships an HTTP
// implementation ([NewNotionAdapter]) speaking Notion API version 2022-06-28.
//
// Every remote failure is mapped by mapNotionError onto exactly one of the
// sentinel errors in errors.go (ErrAuth, ErrSchema, ErrNetwork,
// ErrRateLimited, ErrUnknown) so that callers can classify outcomes with
// [errors.Is] without knowing anything about HTTP.
package adapter

import (
	"context"

	"github.com/MKhiriev/notion-brain/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notion_adapter_mock.go -package=mock

// NotionAdapter defines the outbound contract with the remote notes database.
type NotionAdapter interface {
	// ValidateSchema reads the configured database and checks that every
	// configured property exists with the expected type (title, select,
	// status, date). A mismatch is returned as an ErrSchema-wrapped error
	// whose message names the offending property.
	ValidateSchema(ctx context.Context) error

	// CreatePage creates one page for the note in the configured database and
	// returns the remote page id. The note body (resumen, acciones, raw text)
	// is attached as content blocks. Called at most once per delivery
	// attempt; the remote side is not consulted for duplicates.
	CreatePage(ctx context.Context, note models.Note) (string, error)

	// UpdatePageStatus sets the status-type property of an existing page.
	UpdatePageStatus(ctx context.Context, pageID string, status string) error

	// PatchSelectOptions appends options to a select-type property of the
	// database so that locally added master values exist remotely before any
	// page references them.
	PatchSelectOptions(ctx context.Context, property string, options []string) error

	// CountOpenPages returns how many pages reference the given select value
	// and are not yet in the final status. Used before retiring a master
	// value.
	CountOpenPages(ctx context.Context, property string, value string) (int, error)
}
