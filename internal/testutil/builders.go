package testutil

import (
	"strconv"
	"time"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

// SessionFor returns a signed-in session for role that expires a day after TestTime.
func SessionFor(role domainauth.Role, userID int) domainauth.Session {
	return domainauth.Session{
		ID:              "sess-" + strconv.Itoa(userID),
		BearerToken:     "token-" + strconv.Itoa(userID),
		IsAuthenticated: true,
		User: domainauth.UserIdentity{
			UserID:    userID,
			UserName:  role.Name() + strconv.Itoa(userID),
			FirstName: "Test",
			LastName:  role.Label(),
			Email:     role.Name() + strconv.Itoa(userID) + "@example.edu",
			RoleID:    role,
			Status:    domainauth.UserStatusActive,
		},
		ExpiresAt: TestTime().Add(24 * time.Hour),
	}
}

// EventBuilder provides a fluent interface for building magazine events in tests.
type EventBuilder struct {
	ev model.Event
}

// NewEvent returns an event that is open for submissions at TestTime: the first closure is
// a week away and the final closure two weeks away.
func NewEvent(id int) *EventBuilder {
	now := TestTime()
	return &EventBuilder{ev: model.Event{
		ID:               id,
		Name:             "Spring Issue " + strconv.Itoa(id),
		Description:      "Stories, essays and photography.",
		FirstClosureDate: model.NewTimestamp(now.Add(7 * 24 * time.Hour)),
		FinalClosureDate: model.NewTimestamp(now.Add(14 * 24 * time.Hour)),
	}}
}

// WithName sets the event name.
func (b *EventBuilder) WithName(name string) *EventBuilder {
	b.ev.Name = name
	return b
}

// WithFaculty sets the owning faculty.
func (b *EventBuilder) WithFaculty(id int) *EventBuilder {
	b.ev.FacultyID = IntPtr(id)
	return b
}

// WithClosures sets both closure dates.
func (b *EventBuilder) WithClosures(first, final time.Time) *EventBuilder {
	b.ev.FirstClosureDate = model.NewTimestamp(first)
	b.ev.FinalClosureDate = model.NewTimestamp(final)
	return b
}

// SubmissionClosed moves the first closure into the past while edits stay open.
func (b *EventBuilder) SubmissionClosed() *EventBuilder {
	now := TestTime()
	return b.WithClosures(now.Add(-24*time.Hour), now.Add(7*24*time.Hour))
}

// Closed moves both closure dates into the past.
func (b *EventBuilder) Closed() *EventBuilder {
	now := TestTime()
	return b.WithClosures(now.Add(-14*24*time.Hour), now.Add(-24*time.Hour))
}

// Build returns the event.
func (b *EventBuilder) Build() model.Event {
	return b.ev
}

// ContributionBuilder provides a fluent interface for building contributions in tests.
type ContributionBuilder struct {
	c model.Contribution
}

// NewContribution returns a pending contribution by studentID to eventID.
func NewContribution(id, eventID, studentID int) *ContributionBuilder {
	return &ContributionBuilder{c: model.Contribution{
		ID:          id,
		Title:       "Contribution " + strconv.Itoa(id),
		Description: "A short piece.",
		Status:      model.ContributionPending,
		Student:     model.StudentRef{ID: studentID, Name: "Student " + strconv.Itoa(studentID)},
		EventID:     eventID,
		SubmittedAt: model.NewTimestamp(TestTime().Add(-time.Hour)),
	}}
}

// WithStatus sets the review status.
func (b *ContributionBuilder) WithStatus(status model.ContributionStatus) *ContributionBuilder {
	b.c.Status = status
	return b
}

// WithTitle sets the title.
func (b *ContributionBuilder) WithTitle(title string) *ContributionBuilder {
	b.c.Title = title
	return b
}

// SubmittedAt sets the submission time.
func (b *ContributionBuilder) SubmittedAt(t time.Time) *ContributionBuilder {
	b.c.SubmittedAt = model.NewTimestamp(t)
	return b
}

// Build returns the contribution.
func (b *ContributionBuilder) Build() model.Contribution {
	return b.c
}

// NewUser returns an active user with role.
func NewUser(id int, role domainauth.Role) model.User {
	return model.User{
		ID:        id,
		UserName:  role.Name() + strconv.Itoa(id),
		FirstName: "User",
		LastName:  strconv.Itoa(id),
		Email:     role.Name() + strconv.Itoa(id) + "@example.edu",
		Status:    domainauth.UserStatusActive,
		Role:      model.RoleRef{ID: role, RoleName: role.Name()},
	}
}
