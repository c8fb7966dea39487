package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2025-03-01T10:00:00Z"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{`"2025-03-01T10:00:00"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{`"2025-03-01"`, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(tt.in), &ts), tt.in)
		assert.True(t, tt.want.Equal(ts.Time), tt.in)
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestamp_MarshalKeepsSubSecondOrder(t *testing.T) {
	earlier := NewTimestamp(time.Date(2025, 3, 1, 10, 0, 0, 120_000_000, time.UTC))
	later := NewTimestamp(time.Date(2025, 3, 1, 10, 0, 0, 450_000_000, time.UTC))

	raw, err := json.Marshal([]Timestamp{later, earlier})
	require.NoError(t, err)
	assert.JSONEq(t, `["2025-03-01T10:00:00.45Z","2025-03-01T10:00:00.12Z"]`, string(raw))

	var back []Timestamp
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back, 2)
	assert.True(t, later.Equal(back[0].Time))
	assert.True(t, earlier.Equal(back[1].Time))
	assert.True(t, back[1].Before(back[0].Time))

	var naive Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-01T10:00:00.123456"`), &naive))
	assert.Equal(t, 123_456_000, naive.Nanosecond())
}

func TestEvent_Windows(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	ev := Event{
		FirstClosureDate: NewTimestamp(now.Add(24 * time.Hour)),
		FinalClosureDate: NewTimestamp(now.Add(72 * time.Hour)),
	}
	assert.True(t, ev.IsOpenForSubmission(now))
	assert.True(t, ev.IsOpenForEdit(now))

	later := now.Add(48 * time.Hour)
	assert.False(t, ev.IsOpenForSubmission(later))
	assert.True(t, ev.IsOpenForEdit(later))

	assert.False(t, Event{}.IsOpenForSubmission(now), "missing dates mean closed")
}

func TestUser_HasRoleName(t *testing.T) {
	u := User{Role: RoleRef{RoleName: "Student"}}
	assert.True(t, u.HasRoleName("student"))
	assert.True(t, u.HasRoleName("STUDENT"))
	assert.False(t, u.HasRoleName("guest"))
}

func TestContribution_EditableStatus(t *testing.T) {
	assert.True(t, Contribution{Status: ContributionPending}.EditableStatus())
	assert.True(t, Contribution{Status: ContributionRejected}.EditableStatus())
	assert.False(t, Contribution{Status: ContributionAccepted}.EditableStatus())

	s, ok := ParseContributionStatus(" Accepted ")
	assert.True(t, ok)
	assert.Equal(t, ContributionAccepted, s)
	_, ok = ParseContributionStatus("draft")
	assert.False(t, ok)
}
