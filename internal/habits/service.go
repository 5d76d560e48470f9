// Package habits implements the query and mutation surface of the habit
// tracker. Expected failures (validation, not-found, invalid state) are
// reported as message lists on the result types; only unexpected storage
// failures are returned as errors.
package habits

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/streak"
	"github.com/julianstephens/habitkit/internal/validation"
)

// MsgHabitNotFound is the user-facing message for failed habit lookups
const MsgHabitNotFound = "Habit not found"

// Service executes habit and settings operations against a storage provider.
// The clock is injected so date-sensitive logic stays deterministic in tests.
type Service struct {
	store storage.Provider
	now   func() time.Time
}

// New creates a service using the system clock
func New(store storage.Provider) *Service {
	return NewWithClock(store, time.Now)
}

// NewWithClock creates a service with an explicit clock
func NewWithClock(store storage.Provider, now func() time.Time) *Service {
	return &Service{
		store: store,
		now:   now,
	}
}

// Now returns the service's current time
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the service's current date in YYYY-MM-DD format
func (s *Service) Today() string {
	return s.now().UTC().Format(constants.DateFormat)
}

// CreateHabitInput carries the fields of a createHabit mutation. Empty
// optional fields fall back to their defaults.
type CreateHabitInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Color       string `json:"color"`
	StreakGoal  string `json:"streak_goal"`
}

// UpdateHabitInput carries the fields of an updateHabit mutation. Nil fields
// are left unchanged.
type UpdateHabitInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Emoji       *string `json:"emoji"`
	Color       *string `json:"color"`
	StreakGoal  *string `json:"streak_goal"`
}

// UpdateSettingsInput carries the fields of an updateUserSettings mutation.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	CompactDays    *int  `json:"compact_days"`
	ShowHabitNames *bool `json:"show_habit_names"`
}

// HabitResult is the payload of habit mutations
type HabitResult struct {
	Habit  *models.Habit `json:"habit"`
	Errors []string      `json:"errors"`
}

// DeleteResult is the payload of the deleteHabit mutation
type DeleteResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// ToggleResult is the payload of the toggleHabitCompletion mutation
type ToggleResult struct {
	Habit    *models.Habit          `json:"habit"`
	NewState models.CompletionState `json:"new_state,omitempty"`
	Errors   []string               `json:"errors"`
}

// CompletionResult is the payload of the updateHabitCompletion mutation
type CompletionResult struct {
	Habit      *models.Habit      `json:"habit"`
	Completion *models.Completion `json:"completion"`
	Errors     []string           `json:"errors"`
}

// SettingsResult is the payload of the updateUserSettings mutation
type SettingsResult struct {
	Settings *models.UserSettings `json:"user_settings"`
	Errors   []string             `json:"errors"`
}

// ListHabits returns all habits, newest created first. When activeOnly is
// set, only habits updated within the active window are returned.
func (s *Service) ListHabits(activeOnly bool) ([]models.Habit, error) {
	return s.store.GetAllHabits(activeOnly)
}

// GetHabit returns the habit with the given external id, or nil when absent
func (s *Service) GetHabit(externalID string) (*models.Habit, error) {
	habit, err := s.store.GetHabit(externalID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &habit, nil
}

// MonthData returns the completion status for each day of the given month
func (s *Service) MonthData(externalID string, year, month int) ([]models.DayStatus, error) {
	habit, err := s.store.GetHabit(externalID)
	if err != nil {
		return nil, err
	}
	return habit.MonthCompletions(year, month), nil
}

// Settings returns the singleton settings record, creating it with defaults
// on first access
func (s *Service) Settings() (models.UserSettings, error) {
	settings, err := s.store.GetSettings()
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.UserSettings{}, err
	}

	if err := s.store.SaveSettings(models.DefaultSettings()); err != nil {
		return models.UserSettings{}, err
	}
	return s.store.GetSettings()
}

// CreateHabit validates and persists a new habit with a fresh external id
func (s *Service) CreateHabit(in CreateHabitInput) (HabitResult, error) {
	habit := models.Habit{
		ExternalID:  uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Emoji:       in.Emoji,
		Color:       in.Color,
		StreakGoal:  models.StreakGoal(in.StreakGoal),
		Completions: models.CompletionLog{},
		CreatedAt:   s.now().UTC(),
	}
	if habit.Emoji == "" {
		habit.Emoji = constants.DefaultEmoji
	}
	if habit.Color == "" {
		habit.Color = constants.DefaultColor
	}
	if habit.StreakGoal == "" {
		habit.StreakGoal = models.StreakGoal(constants.DefaultStreakGoal)
	}

	if result := validation.ValidateHabit(habit); result.HasViolations() {
		return HabitResult{Errors: result.Violations}, nil
	}

	if err := s.saveHabit(&habit); err != nil {
		return HabitResult{}, err
	}

	logger.Info("created habit", "external_id", habit.ExternalID, "name", habit.Name)
	return HabitResult{Habit: &habit, Errors: []string{}}, nil
}

// UpdateHabit applies the provided fields to an existing habit. Validation
// failure leaves the stored habit unchanged.
func (s *Service) UpdateHabit(externalID string, in UpdateHabitInput) (HabitResult, error) {
	habit, err := s.store.GetHabit(externalID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return HabitResult{Errors: []string{MsgHabitNotFound}}, nil
		}
		return HabitResult{}, err
	}

	if in.Name != nil {
		habit.Name = *in.Name
	}
	if in.Description != nil {
		habit.Description = *in.Description
	}
	if in.Emoji != nil {
		habit.Emoji = *in.Emoji
	}
	if in.Color != nil {
		habit.Color = *in.Color
	}
	if in.StreakGoal != nil {
		habit.StreakGoal = models.StreakGoal(*in.StreakGoal)
	}

	if result := validation.ValidateHabit(habit); result.HasViolations() {
		return HabitResult{Errors: result.Violations}, nil
	}

	if err := s.saveHabit(&habit); err != nil {
		return HabitResult{}, err
	}

	return HabitResult{Habit: &habit, Errors: []string{}}, nil
}

// DeleteHabit removes a habit and its completion log permanently
func (s *Service) DeleteHabit(externalID string) (DeleteResult, error) {
	if err := s.store.DeleteHabit(externalID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return DeleteResult{Errors: []string{MsgHabitNotFound}}, nil
		}
		return DeleteResult{}, err
	}

	logger.Info("deleted habit", "external_id", externalID)
	return DeleteResult{Success: true, Errors: []string{}}, nil
}

// ToggleCompletion flips the completion state for a date (defaulting to
// today) between completed and not_started and returns the new state
func (s *Service) ToggleCompletion(externalID, date string) (ToggleResult, error) {
	habit, err := s.store.GetHabit(externalID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ToggleResult{Errors: []string{MsgHabitNotFound}}, nil
		}
		return ToggleResult{}, err
	}

	date, msg := s.resolveDate(date)
	if msg != "" {
		return ToggleResult{Errors: []string{msg}}, nil
	}

	newState := habit.Completions.Toggle(date, s.now().UTC())
	if err := s.saveHabit(&habit); err != nil {
		return ToggleResult{}, err
	}

	return ToggleResult{Habit: &habit, NewState: newState, Errors: []string{}}, nil
}

// UpdateCompletion writes an explicit completion state (and optional notes)
// for a date, defaulting to today
func (s *Service) UpdateCompletion(externalID, date, state string, notes *string) (CompletionResult, error) {
	habit, err := s.store.GetHabit(externalID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return CompletionResult{Errors: []string{MsgHabitNotFound}}, nil
		}
		return CompletionResult{}, err
	}

	date, msg := s.resolveDate(date)
	if msg != "" {
		return CompletionResult{Errors: []string{msg}}, nil
	}

	if err := habit.Completions.Set(date, models.CompletionState(state), s.now().UTC(), notes); err != nil {
		if errors.Is(err, models.ErrInvalidState) {
			return CompletionResult{Errors: []string{err.Error()}}, nil
		}
		return CompletionResult{}, err
	}

	if err := s.saveHabit(&habit); err != nil {
		return CompletionResult{}, err
	}

	completion := habit.Completions[date]
	return CompletionResult{Habit: &habit, Completion: &completion, Errors: []string{}}, nil
}

// UpdateSettings applies the provided fields to the singleton settings record
func (s *Service) UpdateSettings(in UpdateSettingsInput) (SettingsResult, error) {
	settings, err := s.Settings()
	if err != nil {
		return SettingsResult{}, err
	}

	if in.CompactDays != nil {
		settings.CompactDays = *in.CompactDays
	}
	if in.ShowHabitNames != nil {
		settings.ShowHabitNames = *in.ShowHabitNames
	}

	if result := validation.ValidateSettings(settings); result.HasViolations() {
		return SettingsResult{Errors: result.Violations}, nil
	}

	if err := s.store.SaveSettings(settings); err != nil {
		return SettingsResult{}, err
	}

	saved, err := s.store.GetSettings()
	if err != nil {
		return SettingsResult{}, err
	}
	return SettingsResult{Settings: &saved, Errors: []string{}}, nil
}

// saveHabit recomputes streak counters, persists the habit, and reloads it
// so store-maintained fields (row id, timestamps) are reflected. The longest
// streak is a high-water mark: it is only ever raised by a recompute of the
// current streak, never lowered.
func (s *Service) saveHabit(habit *models.Habit) error {
	habit.CurrentStreak = streak.Current(habit.Completions, s.now().UTC())
	if habit.CurrentStreak > habit.LongestStreak {
		habit.LongestStreak = habit.CurrentStreak
	}

	if err := s.store.UpdateHabit(*habit); err != nil {
		return err
	}

	saved, err := s.store.GetHabit(habit.ExternalID)
	if err != nil {
		return err
	}
	*habit = saved
	return nil
}

// resolveDate defaults an empty date to today and checks the format,
// returning a user-facing message on failure
func (s *Service) resolveDate(date string) (string, string) {
	if date == "" {
		return s.Today(), ""
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return "", "Invalid date format: " + date + " (expected YYYY-MM-DD)"
	}
	return date, ""
}
