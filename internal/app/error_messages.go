// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants and helpers used
// across the notion-brain TUI and capture API.
//
// All Msg* constants are human-readable (Spanish) message strings shown to
// the user to describe the outcome of an operation. Keeping them in one
// place ensures consistent wording throughout the application.
package app

import "github.com/MKhiriev/notion-brain/models"

const (
	// MsgEmptyNote is shown when a capture attempt contains no text.
	MsgEmptyNote = "la nota no puede estar vacía"

	// MsgDuplicateNote is shown when a capture attempt matches a note that
	// was already stored.
	MsgDuplicateNote = "nota duplicada, ya estaba guardada"

	// MsgNoteAlreadySent is shown when the user tries to edit a note that
	// has already been delivered to Notion.
	MsgNoteAlreadySent = "la nota ya fue enviada y no se puede modificar"

	// MsgSyncInProgress is shown when a sync pass is requested while another
	// one is still running.
	MsgSyncInProgress = "ya hay una sincronización en curso"

	// MsgNotionNotConfigured is shown when sync is requested but the Notion
	// token or database id are missing from the configuration.
	MsgNotionNotConfigured = "configura el token y la base de datos de Notion antes de sincronizar"
)

// Per-class guidance shown next to a failed note. Auth and schema problems
// need the user to act; the rest resolve themselves on a later pass.
const (
	msgFixAuth     = "revisa el token de Notion; no se reintentará hasta corregirlo"
	msgFixSchema   = "revisa las propiedades de la base de datos; no se reintentará hasta corregirlo"
	msgWaitNetwork = "sin conexión; se reintentará en la próxima sincronización"
	msgWaitRateLim = "límite de peticiones alcanzado; se reintentará más tarde"
	msgWaitUnknown = "error desconocido; se reintentará unas pocas veces más"
)

// ErrorClassGuidance returns the user-facing advice for a delivery failure
// of the given class, or an empty string when there is nothing to advise.
func ErrorClassGuidance(class models.ErrorClass) string {
	switch class {
	case models.ErrorClassAuth:
		return msgFixAuth
	case models.ErrorClassSchema:
		return msgFixSchema
	case models.ErrorClassNetwork:
		return msgWaitNetwork
	case models.ErrorClassRateLimited:
		return msgWaitRateLim
	case models.ErrorClassUnknown:
		return msgWaitUnknown
	default:
		return ""
	}
}
