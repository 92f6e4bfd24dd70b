package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name     string
		dates    []string
		today    string
		expected Progress
	}{
		{
			name:     "three consecutive days",
			dates:    []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			today:    "2024-01-03",
			expected: Progress{Streak: 3, Total: 3},
		},
		{
			name:     "gap breaks the chain",
			dates:    []string{"2024-01-01", "2024-01-03"},
			today:    "2024-01-03",
			expected: Progress{Streak: 1, Total: 2},
		},
		{
			name:     "no dates",
			dates:    []string{},
			today:    "2024-05-17",
			expected: Progress{Streak: 0, Total: 0},
		},
		{
			name:     "today missing",
			dates:    []string{"2024-01-01", "2024-01-02"},
			today:    "2024-01-03",
			expected: Progress{Streak: 0, Total: 2},
		},
		{
			name:     "unordered input",
			dates:    []string{"2024-01-03", "2023-12-31", "2024-01-02", "2024-01-01"},
			today:    "2024-01-03",
			expected: Progress{Streak: 4, Total: 4},
		},
		{
			name:     "across month and leap day",
			dates:    []string{"2024-02-28", "2024-02-29", "2024-03-01"},
			today:    "2024-03-01",
			expected: Progress{Streak: 3, Total: 3},
		},
		{
			name:     "duplicates counted once",
			dates:    []string{"2024-01-03", "2024-01-03"},
			today:    "2024-01-03",
			expected: Progress{Streak: 1, Total: 1},
		},
		{
			name:     "future dates do not extend the streak",
			dates:    []string{"2024-01-03", "2024-01-04"},
			today:    "2024-01-03",
			expected: Progress{Streak: 1, Total: 2},
		},
		{
			name:     "malformed today",
			dates:    []string{"2024-01-03"},
			today:    "03.01.2024",
			expected: Progress{Streak: 0, Total: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateProgress(tt.dates, tt.today)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDateKey(t *testing.T) {
	kyiv := time.FixedZone("UTC+3", 3*60*60)

	tests := []struct {
		name     string
		time     time.Time
		loc      *time.Location
		expected string
	}{
		{
			name:     "utc midday",
			time:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			loc:      time.UTC,
			expected: "2024-12-12",
		},
		{
			name:     "nil location defaults to utc",
			time:     time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC),
			loc:      nil,
			expected: "2024-01-01",
		},
		{
			name:     "late utc evening is next day further east",
			time:     time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC),
			loc:      kyiv,
			expected: "2024-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateKey(tt.time, tt.loc))
		})
	}
}
