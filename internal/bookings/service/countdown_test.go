package service

import (
	"testing"
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/model"
)

func TestCountdown(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name     string
		target   *time.Time
		expected model.CountdownParts
	}{
		{
			name:     "nil target",
			target:   nil,
			expected: model.CountdownParts{},
		},
		{
			name:     "target in the past",
			target:   ptr(now.Add(-time.Hour)),
			expected: model.CountdownParts{},
		},
		{
			name:     "target equal to now",
			target:   ptr(now),
			expected: model.CountdownParts{},
		},
		{
			name:     "full decomposition",
			target:   ptr(now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second)),
			expected: model.CountdownParts{Days: 2, Hours: 3, Minutes: 4, Seconds: 5},
		},
		{
			name:     "sub-second remainder truncated",
			target:   ptr(now.Add(999 * time.Millisecond)),
			expected: model.CountdownParts{},
		},
		{
			name:     "exactly one second",
			target:   ptr(now.Add(time.Second)),
			expected: model.CountdownParts{Seconds: 1},
		},
		{
			name:     "just under a day",
			target:   ptr(now.Add(24*time.Hour - time.Second)),
			expected: model.CountdownParts{Hours: 23, Minutes: 59, Seconds: 59},
		},
		{
			name:     "long horizon",
			target:   ptr(now.Add(400 * 24 * time.Hour)),
			expected: model.CountdownParts{Days: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Countdown(now, tt.target)
			if got != tt.expected {
				t.Errorf("Countdown() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

// Recomposing the parts must land within one second of the original delta.
func TestCountdownReconstruction(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	deltas := []time.Duration{
		time.Second,
		time.Minute + 500*time.Millisecond,
		3*time.Hour + 41*time.Minute + 7*time.Second,
		26*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond,
		17*24*time.Hour + 5*time.Hour + 30*time.Minute,
		365 * 24 * time.Hour,
	}

	for _, delta := range deltas {
		target := now.Add(delta)
		parts := Countdown(now, &target)

		rebuilt := time.Duration(parts.Days)*24*time.Hour +
			time.Duration(parts.Hours)*time.Hour +
			time.Duration(parts.Minutes)*time.Minute +
			time.Duration(parts.Seconds)*time.Second

		diff := delta - rebuilt
		if diff < 0 || diff >= time.Second {
			t.Errorf("delta %v rebuilt as %v, off by %v", delta, rebuilt, diff)
		}
	}
}
