package model

import "time"

// Event is a magazine issue open for contributions between its closure dates.
// New submissions close at FirstClosureDate; edits to existing ones close at FinalClosureDate.
type Event struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	FacultyID        *int      `json:"faculty_id,omitempty"`
	FirstClosureDate Timestamp `json:"first_closure_date"`
	FinalClosureDate Timestamp `json:"final_closure_date"`
}

// IsOpenForSubmission reports whether new contributions are still accepted at now.
func (e Event) IsOpenForSubmission(now time.Time) bool {
	return !e.FirstClosureDate.IsZero() && now.Before(e.FirstClosureDate.Time)
}

// IsOpenForEdit reports whether existing contributions may still be edited at now.
func (e Event) IsOpenForEdit(now time.Time) bool {
	return !e.FinalClosureDate.IsZero() && now.Before(e.FinalClosureDate.Time)
}

// EventRequest is used for both create and update.
type EventRequest struct {
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	FacultyID        *int      `json:"faculty_id,omitempty"`
	FirstClosureDate Timestamp `json:"first_closure_date"`
	FinalClosureDate Timestamp `json:"final_closure_date"`
}
