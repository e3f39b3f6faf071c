package models

// OutcomeKind says what happened to a single note during one sync pass.
type OutcomeKind string

const (
	OutcomeSent    OutcomeKind = "sent"
	OutcomeFailed  OutcomeKind = "failed"
	OutcomeSkipped OutcomeKind = "skipped"
)

// NoteOutcome is the per-note result recorded in a SyncReport.
type NoteOutcome struct {
	NoteID string      `json:"note_id"`
	Kind   OutcomeKind `json:"kind"`
	PageID string      `json:"page_id,omitempty"`
	Reason string      `json:"reason,omitempty"`
	Class  ErrorClass  `json:"class,omitempty"`
}

// SyncReport summarises one full sync pass. Individual note failures never
// abort the pass; Halted is set only when a non-retryable (auth/schema)
// failure stopped the remaining candidates from being attempted.
type SyncReport struct {
	Sent     int           `json:"sent"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Halted   bool          `json:"halted"`
	HaltedBy string        `json:"halted_by,omitempty"`
	Outcomes []NoteOutcome `json:"outcomes,omitempty"`
}

// Add appends an outcome and bumps the matching counter.
func (r *SyncReport) Add(o NoteOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Kind {
	case OutcomeSent:
		r.Sent++
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	}
}
