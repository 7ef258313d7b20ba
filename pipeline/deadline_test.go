package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-06-02 is a Monday.
var anchorMonday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestExtractMeetingDate(t *testing.T) {
	fallback := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		transcript string
		want       time.Time
	}{
		{
			name:       "labeled ISO date",
			transcript: "Meeting: Standup\nDate: 2025-06-02\n\nSarah: hello",
			want:       anchorMonday,
		},
		{
			name:       "labeled prose date",
			transcript: "Date: June 2, 2025\n\nSarah: hello",
			want:       anchorMonday,
		},
		{
			name:       "bare prose date in body",
			transcript: "Sarah: we met on June 2, 2025 to discuss the launch",
			want:       anchorMonday,
		},
		{
			name:       "no date falls back to now",
			transcript: "Sarah: hello everyone",
			want:       fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractMeetingDate(tt.transcript, fallback)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestResolveDeadlinePhrase(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
	}{
		{"2025-02-12", "2025-02-12"}, // ISO passes through unchanged
		{"by Friday", "2025-06-06"},
		{"end of this week", "2025-06-06"},
		{"next week", "2025-06-09"},
		{"", "2025-06-09"}, // unspecified is 7 days out
		{"next Wednesday", "2025-06-04"},
		{"next Monday", "2025-06-09"},
		{"ASAP", "2025-06-04"},
		{"immediately", "2025-06-04"},
		{"end of month", "2025-06-30"},
		{"end of Q2", "2025-06-30"},
		{"end of Q4", "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run("phrase "+tt.phrase, func(t *testing.T) {
			got, ok := resolveDeadlinePhrase(tt.phrase, anchorMonday)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDeadlinePhraseIdempotentOnISO(t *testing.T) {
	// An already-resolved date stays fixed regardless of the anchor.
	anchors := []time.Time{
		anchorMonday,
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, anchor := range anchors {
		got, ok := resolveDeadlinePhrase("2025-02-12", anchor)
		assert.True(t, ok)
		assert.Equal(t, "2025-02-12", got)
	}
}

func TestResolveDeadlinePhraseDefersFreeForm(t *testing.T) {
	for _, phrase := range []string{"mid July", "after the conference", "June 15th"} {
		_, ok := resolveDeadlinePhrase(phrase, anchorMonday)
		assert.False(t, ok, "phrase %q should defer to the gateway", phrase)
	}
}

func TestAddBusinessDaysSkipsWeekend(t *testing.T) {
	// Friday + 2 business days lands on Tuesday.
	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-10", addBusinessDays(friday, 2).Format(isoDate))
}

func TestEndOfQuarter(t *testing.T) {
	assert.Equal(t, "2025-03-31", endOfQuarter(2025, 1).Format(isoDate))
	assert.Equal(t, "2025-06-30", endOfQuarter(2025, 2).Format(isoDate))
	assert.Equal(t, "2025-09-30", endOfQuarter(2025, 3).Format(isoDate))
	assert.Equal(t, "2025-12-31", endOfQuarter(2025, 4).Format(isoDate))
}
