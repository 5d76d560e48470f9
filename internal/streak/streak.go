// Package streak derives streak counters from a habit's completion log.
// Both calculations are pure: the reference "today" is passed in by the
// caller, never read from the system clock.
package streak

import (
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// Current returns the length of the streak of consecutive completed days
// ending at today. A habit keeps its streak alive for one day even when not
// yet completed today: the walk starts at today but tolerates the most
// recent completed day being yesterday. Any larger gap breaks the streak.
func Current(log models.CompletionLog, today time.Time) int {
	completed := log.CompletedDates()
	if len(completed) == 0 {
		return 0
	}

	// Walk newest to oldest
	for i, j := 0, len(completed)-1; i < j; i, j = i+1, j-1 {
		completed[i], completed[j] = completed[j], completed[i]
	}

	today = truncate(today)
	if completed[0].Before(today.AddDate(0, 0, -1)) {
		// Most recent completed day is older than yesterday
		return 0
	}

	streak := 0
	expected := today
	for _, date := range completed {
		if date.Before(expected.AddDate(0, 0, -1)) {
			break
		}
		streak++
		expected = date.AddDate(0, 0, -1)
	}

	return streak
}

// Longest returns the length of the longest run of consecutive completed
// days anywhere in the log
func Longest(log models.CompletionLog) int {
	completed := log.CompletedDates()
	if len(completed) == 0 {
		return 0
	}

	longest := 1
	run := 1
	for i := 1; i < len(completed); i++ {
		if completed[i].Equal(completed[i-1].AddDate(0, 0, 1)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	return longest
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
