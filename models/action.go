// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ActionStatus is the completion state of a follow-up action.
type ActionStatus string

const (
	// ActionPending marks an action still waiting to be done.
	ActionPending ActionStatus = "pendiente"

	// ActionDone marks a completed action. Terminal.
	ActionDone ActionStatus = "hecha"
)

// Action is a follow-up item extracted from a note, either typed by the user
// or suggested by the processor. Completing the last pending action of a sent
// note moves the note's Notion page to its final status.
type Action struct {
	ID          string       `json:"id"`
	NoteID      string       `json:"note_id"`
	Description string       `json:"description"`
	Area        string       `json:"area"`
	Status      ActionStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}
