package habits

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store := storage.NewSQLiteStore(t.TempDir() + "/habitkit.db")
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	return NewWithClock(store, func() time.Time { return testNow })
}

func mustCreate(t *testing.T, svc *Service, in CreateHabitInput) *models.Habit {
	t.Helper()

	result, err := svc.CreateHabit(in)
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("CreateHabit errors: %v", result.Errors)
	}
	return result.Habit
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestCreateHabitDefaults(t *testing.T) {
	svc := newTestService(t)

	habit := mustCreate(t, svc, CreateHabitInput{Name: "Read"})

	if habit.ExternalID == "" {
		t.Error("expected external id to be assigned")
	}
	if habit.Emoji != constants.DefaultEmoji {
		t.Errorf("emoji = %q, want %q", habit.Emoji, constants.DefaultEmoji)
	}
	if habit.Color != constants.DefaultColor {
		t.Errorf("color = %q, want %q", habit.Color, constants.DefaultColor)
	}
	if habit.StreakGoal != models.GoalNone {
		t.Errorf("streak goal = %q, want %q", habit.StreakGoal, models.GoalNone)
	}
	if len(habit.Completions) != 0 {
		t.Errorf("expected empty completion log, got %d entries", len(habit.Completions))
	}
	if habit.CurrentStreak != 0 || habit.LongestStreak != 0 {
		t.Errorf("streaks = %d/%d, want 0/0", habit.CurrentStreak, habit.LongestStreak)
	}
}

func TestCreateHabitCollectsAllViolations(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.CreateHabit(CreateHabitInput{
		Name:       "",
		Color:      "red",
		StreakGoal: "hourly",
	})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", result.Errors)
	}
	if result.Habit != nil {
		t.Error("expected no habit on validation failure")
	}

	habits, err := svc.ListHabits(false)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected nothing persisted, got %d habits", len(habits))
	}
}

func TestUpdateHabitPartial(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Stretch", Description: "morning"})

	result, err := svc.UpdateHabit(habit.ExternalID, UpdateHabitInput{Name: strPtr("Stretch daily")})
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("UpdateHabit errors: %v", result.Errors)
	}
	if result.Habit.Name != "Stretch daily" {
		t.Errorf("name = %q, want %q", result.Habit.Name, "Stretch daily")
	}
	if result.Habit.Description != "morning" {
		t.Errorf("description = %q, want unchanged %q", result.Habit.Description, "morning")
	}
}

func TestUpdateHabitValidationLeavesStoredUnchanged(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Run"})

	result, err := svc.UpdateHabit(habit.ExternalID, UpdateHabitInput{
		Name:  strPtr(""),
		Color: strPtr("#10b981"),
	})
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected validation errors")
	}

	stored, err := svc.GetHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if stored.Name != "Run" {
		t.Errorf("stored name = %q, want %q", stored.Name, "Run")
	}
	if stored.Color != constants.DefaultColor {
		t.Errorf("stored color = %q, want %q", stored.Color, constants.DefaultColor)
	}
}

func TestUpdateHabitNotFound(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.UpdateHabit("missing", UpdateHabitInput{Name: strPtr("x")})
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0] != MsgHabitNotFound {
		t.Errorf("errors = %v, want [%q]", result.Errors, MsgHabitNotFound)
	}
}

func TestDeleteHabit(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Meditate"})

	result, err := svc.DeleteHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success, got errors %v", result.Errors)
	}

	got, err := svc.GetHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if got != nil {
		t.Error("expected habit to be gone")
	}

	again, err := svc.DeleteHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if again.Success || len(again.Errors) != 1 {
		t.Errorf("second delete = %+v, want not-found error", again)
	}
}

func TestToggleCompletionDefaultsToToday(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Journal"})

	result, err := svc.ToggleCompletion(habit.ExternalID, "")
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if result.NewState != models.StateCompleted {
		t.Errorf("new state = %q, want %q", result.NewState, models.StateCompleted)
	}
	if got := result.Habit.Completions.StateOn(svc.Today()); got != models.StateCompleted {
		t.Errorf("state on %s = %q, want %q", svc.Today(), got, models.StateCompleted)
	}
	if result.Habit.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want 1", result.Habit.CurrentStreak)
	}
}

func TestToggleCompletionStreakRecompute(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Walk"})

	yesterday := testNow.AddDate(0, 0, -1).Format(constants.DateFormat)
	if _, err := svc.ToggleCompletion(habit.ExternalID, yesterday); err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	result, err := svc.ToggleCompletion(habit.ExternalID, "")
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if result.Habit.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2", result.Habit.CurrentStreak)
	}
	if result.Habit.LongestStreak != 2 {
		t.Errorf("longest streak = %d, want 2", result.Habit.LongestStreak)
	}
}

func TestLongestStreakIsHighWaterMark(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Swim"})

	if _, err := svc.ToggleCompletion(habit.ExternalID, ""); err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	result, err := svc.ToggleCompletion(habit.ExternalID, "")
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if result.NewState != models.StateNotStarted {
		t.Errorf("new state = %q, want %q", result.NewState, models.StateNotStarted)
	}
	if result.Habit.CurrentStreak != 0 {
		t.Errorf("current streak = %d, want 0", result.Habit.CurrentStreak)
	}
	if result.Habit.LongestStreak != 1 {
		t.Errorf("longest streak = %d, want 1 (retained)", result.Habit.LongestStreak)
	}
}

func TestToggleCompletionInvalidDate(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Cook"})

	result, err := svc.ToggleCompletion(habit.ExternalID, "15-03-2024")
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Invalid date") {
		t.Errorf("errors = %v, want invalid date message", result.Errors)
	}
}

func TestUpdateCompletionWithNotes(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Yoga"})

	result, err := svc.UpdateCompletion(habit.ExternalID, "2024-03-10", "skipped", strPtr("rest day"))
	if err != nil {
		t.Fatalf("UpdateCompletion: %v", err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("UpdateCompletion errors: %v", result.Errors)
	}
	if result.Completion.State != models.StateSkipped {
		t.Errorf("state = %q, want %q", result.Completion.State, models.StateSkipped)
	}
	if result.Completion.Notes == nil || *result.Completion.Notes != "rest day" {
		t.Errorf("notes = %v, want %q", result.Completion.Notes, "rest day")
	}
}

func TestUpdateCompletionInvalidState(t *testing.T) {
	svc := newTestService(t)
	habit := mustCreate(t, svc, CreateHabitInput{Name: "Sleep"})

	result, err := svc.UpdateCompletion(habit.ExternalID, "", "done", nil)
	if err != nil {
		t.Fatalf("UpdateCompletion: %v", err)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "done") {
		t.Errorf("errors = %v, want invalid state message", result.Errors)
	}

	stored, err := svc.GetHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if len(stored.Completions) != 0 {
		t.Errorf("expected no completion written, got %d", len(stored.Completions))
	}
}

func TestSettingsLazyCreate(t *testing.T) {
	svc := newTestService(t)

	settings, err := svc.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if settings.CompactDays != constants.DefaultCompactDays {
		t.Errorf("compact days = %d, want %d", settings.CompactDays, constants.DefaultCompactDays)
	}
	if !settings.ShowHabitNames {
		t.Error("expected show habit names to default to true")
	}
}

func TestUpdateSettings(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.UpdateSettings(UpdateSettingsInput{
		CompactDays:    intPtr(7),
		ShowHabitNames: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("UpdateSettings errors: %v", result.Errors)
	}
	if result.Settings.CompactDays != 7 || result.Settings.ShowHabitNames {
		t.Errorf("settings = %+v, want compact days 7 and names hidden", result.Settings)
	}

	partial, err := svc.UpdateSettings(UpdateSettingsInput{ShowHabitNames: boolPtr(true)})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if partial.Settings.CompactDays != 7 {
		t.Errorf("compact days = %d, want unchanged 7", partial.Settings.CompactDays)
	}
}

func TestUpdateSettingsOutOfRange(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.UpdateSettings(UpdateSettingsInput{CompactDays: intPtr(0)})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want one violation", result.Errors)
	}

	stored, err := svc.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if stored.CompactDays != constants.DefaultCompactDays {
		t.Errorf("compact days = %d, want unchanged %d", stored.CompactDays, constants.DefaultCompactDays)
	}
}
