package tui

import (
	"github.com/MKhiriev/notion-brain/models"
)

type notesLoadedMsg struct {
	notes []models.Note
	err   error
}

type syncDoneMsg struct {
	report models.SyncReport
	err    error
}

type noteSavedMsg struct {
	note models.Note
	err  error
}

type metadataSavedMsg struct {
	err error
}

type mastersLoadedMsg struct {
	masters []models.Master
	err     error
}

type masterSavedMsg struct {
	err error
}

type masterDeactivatedMsg struct {
	err error
}

type schemaPushedMsg struct {
	err error
}
