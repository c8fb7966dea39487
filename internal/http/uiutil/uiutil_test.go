package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"future", now.Add(time.Hour), "just now"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-time.Minute), "1 minute ago"},
		{"minutes", now.Add(-15 * time.Minute), "15 minutes ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-25 * time.Hour), "1 day ago"},
		{"old", now.Add(-30 * 24 * time.Hour), FormatFriendlyDateTime(now.Add(-30 * 24 * time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyRelativeTime(tt.at, now))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, DaysUntil(time.Time{}, now))
	assert.Equal(t, "closed", DaysUntil(now, now))
	assert.Equal(t, "closes today", DaysUntil(now.Add(2*time.Hour), now))
	assert.Equal(t, "closes in 3 days", DaysUntil(now.Add(3*24*time.Hour+time.Hour), now))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "abc…", TruncateWithEllipsis("abcdef", 4))
	assert.Equal(t, "…", TruncateWithEllipsis("abcdef", 1))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", Initials("ada lovelace byron"))
	assert.Equal(t, "G", Initials("guest"))
	assert.Empty(t, Initials("  "))
}
