package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
)

// ErrInvalidState is returned when a completion write uses an unrecognized state
var ErrInvalidState = errors.New("invalid completion state")

// CompletionState represents the state of a habit on a single day
type CompletionState string

const (
	StateNotStarted CompletionState = "not_started"
	StateInProgress CompletionState = "in_progress"
	StateCompleted  CompletionState = "completed"
	StateSkipped    CompletionState = "skipped"
	StateFailed     CompletionState = "failed"
)

// CompletionStates lists every recognized state
var CompletionStates = []CompletionState{
	StateNotStarted, StateInProgress, StateCompleted, StateSkipped, StateFailed,
}

// Valid reports whether s is one of the recognized completion states
func (s CompletionState) Valid() bool {
	switch s {
	case StateNotStarted, StateInProgress, StateCompleted, StateSkipped, StateFailed:
		return true
	}
	return false
}

// StreakGoal represents the streak frequency goal of a habit
type StreakGoal string

const (
	GoalNone    StreakGoal = "none"
	GoalDaily   StreakGoal = "daily"
	GoalWeekly  StreakGoal = "weekly"
	GoalMonthly StreakGoal = "monthly"
)

// Valid reports whether g is one of the recognized streak goals
func (g StreakGoal) Valid() bool {
	switch g {
	case GoalNone, GoalDaily, GoalWeekly, GoalMonthly:
		return true
	}
	return false
}

// Completion is a single day's record for a habit
type Completion struct {
	Date        string          `json:"date"` // YYYY-MM-DD format
	State       CompletionState `json:"state"`
	CompletedAt time.Time       `json:"completed_at"`
	Notes       *string         `json:"notes,omitempty"`
}

// Completed reports whether the record is in the completed state
func (c Completion) Completed() bool {
	return c.State == StateCompleted
}

// CompletionLog maps dates (YYYY-MM-DD) to their completion record.
// Keying by date guarantees at most one record per calendar day.
type CompletionLog map[string]Completion

// StateOn returns the stored state for date, or StateNotStarted when no
// record exists. It never fails.
func (l CompletionLog) StateOn(date string) CompletionState {
	if c, ok := l[date]; ok {
		return c.State
	}
	return StateNotStarted
}

// CompletedOn reports whether the habit was completed on date
func (l CompletionLog) CompletedOn(date string) bool {
	return l.StateOn(date) == StateCompleted
}

// Set writes state for date, creating the record on first write. An existing
// record keeps its notes unless a non-nil value is supplied. CompletedAt is
// refreshed on every write regardless of state.
func (l CompletionLog) Set(date string, state CompletionState, now time.Time, notes *string) error {
	if !state.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, state)
	}

	c, ok := l[date]
	if !ok {
		c = Completion{Date: date}
	}
	c.State = state
	c.CompletedAt = now
	if notes != nil {
		c.Notes = notes
	}
	l[date] = c
	return nil
}

// Toggle flips date between completed and not_started: a completed day
// becomes not_started, any other state becomes completed. Notes are left
// untouched. Returns the new state.
func (l CompletionLog) Toggle(date string, now time.Time) CompletionState {
	newState := StateCompleted
	if l.StateOn(date) == StateCompleted {
		newState = StateNotStarted
	}
	// Set cannot fail here, both toggle targets are recognized states
	_ = l.Set(date, newState, now, nil)
	return newState
}

// Records returns all completion records ordered by ascending date
func (l CompletionLog) Records() []Completion {
	records := make([]Completion, 0, len(l))
	for _, c := range l {
		records = append(records, c)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records
}

// CompletedDates returns the parsed dates of all completed records in
// ascending order. Records with unparseable dates are skipped.
func (l CompletionLog) CompletedDates() []time.Time {
	var dates []time.Time
	for _, c := range l {
		if c.State != StateCompleted {
			continue
		}
		d, err := time.Parse(constants.DateFormat, c.Date)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// CountByState returns the number of records currently in the given state
func (l CompletionLog) CountByState(state CompletionState) int {
	count := 0
	for _, c := range l {
		if c.State == state {
			count++
		}
	}
	return count
}

// Habit represents a tracked habit with its embedded completion log
type Habit struct {
	ID            int64         `json:"id"`
	ExternalID    string        `json:"external_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Emoji         string        `json:"emoji"`
	Color         string        `json:"color"`
	StreakGoal    StreakGoal    `json:"streak_goal"`
	Completions   CompletionLog `json:"completions"`
	CurrentStreak int           `json:"current_streak"`
	LongestStreak int           `json:"longest_streak"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// DayStatus is the per-day view used by calendars and compact day strips
type DayStatus struct {
	Date      string          `json:"date"` // YYYY-MM-DD format
	State     CompletionState `json:"state"`
	Completed bool            `json:"completed"`
}

// HabitStats summarizes a habit's completion history
type HabitStats struct {
	TotalCompletions int `json:"total_completions"`
	TotalSkipped     int `json:"total_skipped"`
	TotalFailed      int `json:"total_failed"`
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
}

func (h *Habit) dayStatus(date time.Time) DayStatus {
	dateStr := date.Format(constants.DateFormat)
	state := h.Completions.StateOn(dateStr)
	return DayStatus{
		Date:      dateStr,
		State:     state,
		Completed: state == StateCompleted,
	}
}

// LastNDays returns the completion status for the n most recent calendar days
// ending at today, oldest first. n is clamped to [1,7].
func (h *Habit) LastNDays(n int, today time.Time) []DayStatus {
	if n < constants.CompactDaysMin {
		n = constants.CompactDaysMin
	}
	if n > constants.CompactDaysMax {
		n = constants.CompactDaysMax
	}

	days := make([]DayStatus, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, h.dayStatus(today.AddDate(0, 0, -i)))
	}
	return days
}

// MonthCompletions returns one status record per calendar day of the given
// month, ordered by ascending date
func (h *Habit) MonthCompletions(year, month int) []DayStatus {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	var days []DayStatus
	for d := start; d.Month() == start.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, h.dayStatus(d))
	}
	return days
}

// Stats returns the habit's completion totals and streak counters
func (h *Habit) Stats() HabitStats {
	return HabitStats{
		TotalCompletions: h.Completions.CountByState(StateCompleted),
		TotalSkipped:     h.Completions.CountByState(StateSkipped),
		TotalFailed:      h.Completions.CountByState(StateFailed),
		CurrentStreak:    h.CurrentStreak,
		LongestStreak:    h.LongestStreak,
	}
}
