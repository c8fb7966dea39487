package model

// Faculty is an academic faculty; coordinators, students and guests belong to one.
type Faculty struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FacultyRequest is used for both create and update.
type FacultyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
