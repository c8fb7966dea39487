package model

import (
	"strconv"
	"strings"
)

// ContributionStatus is the review state of a contribution.
type ContributionStatus string

const (
	ContributionPending  ContributionStatus = "pending"
	ContributionAccepted ContributionStatus = "accepted"
	ContributionRejected ContributionStatus = "rejected"
)

// Valid reports whether the status is supported.
func (s ContributionStatus) Valid() bool {
	switch s {
	case ContributionPending, ContributionAccepted, ContributionRejected:
		return true
	default:
		return false
	}
}

// ParseContributionStatus normalizes a status string and reports whether it is supported.
func ParseContributionStatus(v string) (ContributionStatus, bool) {
	s := ContributionStatus(strings.ToLower(strings.TrimSpace(v)))
	return s, s.Valid()
}

// StudentRef identifies the submitting student.
type StudentRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Attachment is an uploaded file stored by the API.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Contribution is a student-submitted article or image set tied to an event.
type Contribution struct {
	ID          int                `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Status      ContributionStatus `json:"status"`
	Student     StudentRef         `json:"student"`
	EventID     int                `json:"event_id"`
	Files       []Attachment       `json:"files,omitempty"`
	SubmittedAt Timestamp          `json:"submitted_at"`
}

// EditableStatus reports whether the review state still allows student edits.
func (c Contribution) EditableStatus() bool {
	return c.Status == ContributionPending || c.Status == ContributionRejected
}

// ContributionFilter narrows contribution lists.
type ContributionFilter struct {
	EventID int
	Status  ContributionStatus
}

// CacheKey renders the filter as a stable cache-key fragment.
func (f ContributionFilter) CacheKey() string {
	return "event=" + strconv.Itoa(f.EventID) + "&status=" + string(f.Status)
}

// ContributionRequest is used for both create and update.
type ContributionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	EventID     int    `json:"event_id"`
}

// ReviewRequest sets a contribution's review status.
type ReviewRequest struct {
	Status ContributionStatus `json:"status"`
}

// Comment is coordinator feedback on a contribution.
type Comment struct {
	ID             int       `json:"id"`
	ContributionID int       `json:"contribution_id"`
	Author         string    `json:"author"`
	Content        string    `json:"content"`
	CreatedAt      Timestamp `json:"created_at"`
}

// CommentRequest adds a comment.
type CommentRequest struct {
	Content string `json:"content"`
}
