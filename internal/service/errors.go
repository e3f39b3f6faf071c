package service

import "errors"

var (
	// ErrSyncInProgress is returned by SyncAll when another pass is already
	// running. The caller should simply try again later.
	ErrSyncInProgress = errors.New("ya hay una sincronización en curso")

	// ErrEmptyText is returned by Create when the draft carries no content.
	ErrEmptyText = errors.New("la nota no puede estar vacía")

	// ErrMasterInUse is returned by Deactivate when open Notion pages still
	// reference the value.
	ErrMasterInUse = errors.New("el maestro sigue en uso en Notion")
)
