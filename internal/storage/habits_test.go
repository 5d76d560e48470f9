package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/models"
)

func setupTestStore(t *testing.T) Provider {
	t.Helper()

	dbPath := t.TempDir() + "/test.db"
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func testHabit(name string) models.Habit {
	return models.Habit{
		ExternalID:  uuid.New().String(),
		Name:        name,
		Emoji:       "⚡",
		Color:       "#a855f7",
		StreakGoal:  models.GoalNone,
		Completions: models.CompletionLog{},
		CreatedAt:   time.Now().UTC(),
	}
}

func TestHabitCRUD(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("Morning meditation")
	habit.Description = "10 minutes before breakfast"

	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	retrieved, err := store.GetHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if retrieved.Name != habit.Name {
		t.Errorf("expected name %q, got %q", habit.Name, retrieved.Name)
	}
	if retrieved.Description != habit.Description {
		t.Errorf("expected description %q, got %q", habit.Description, retrieved.Description)
	}
	if retrieved.ID == 0 {
		t.Error("expected a database id to be assigned")
	}
	if retrieved.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be maintained by the store")
	}

	// Update
	habit.Name = "Evening meditation"
	habit.StreakGoal = models.GoalDaily
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}

	updated, err := store.GetHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("failed to get updated habit: %v", err)
	}
	if updated.Name != "Evening meditation" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
	if updated.StreakGoal != models.GoalDaily {
		t.Errorf("expected streak goal %q, got %q", models.GoalDaily, updated.StreakGoal)
	}
	if updated.ID != retrieved.ID {
		t.Error("update must not reassign the database id")
	}

	// Delete
	if err := store.DeleteHabit(habit.ExternalID); err != nil {
		t.Fatalf("failed to delete habit: %v", err)
	}
	if _, err := store.GetHabit(habit.ExternalID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetHabit_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetHabit(uuid.New().String())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHabit_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DeleteHabit(uuid.New().String())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHabitCompletionsRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("Read")
	notes := "chapter 4"
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	if err := habit.Completions.Set("2024-03-15", models.StateCompleted, now, &notes); err != nil {
		t.Fatalf("failed to set completion: %v", err)
	}
	if err := habit.Completions.Set("2024-03-14", models.StateSkipped, now, nil); err != nil {
		t.Fatalf("failed to set completion: %v", err)
	}

	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	retrieved, err := store.GetHabit(habit.ExternalID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}

	if got := retrieved.Completions.StateOn("2024-03-15"); got != models.StateCompleted {
		t.Errorf("state on 2024-03-15 = %q, want completed", got)
	}
	if got := retrieved.Completions.StateOn("2024-03-14"); got != models.StateSkipped {
		t.Errorf("state on 2024-03-14 = %q, want skipped", got)
	}

	c := retrieved.Completions["2024-03-15"]
	if c.Notes == nil || *c.Notes != notes {
		t.Errorf("notes did not survive the round trip: %v", c.Notes)
	}
	if !c.CompletedAt.Equal(now) {
		t.Errorf("completed_at = %v, want %v", c.CompletedAt, now)
	}
}

func TestGetAllHabits_NewestFirst(t *testing.T) {
	store := setupTestStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		habit := testHabit("Habit")
		habit.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.AddHabit(habit); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
		ids = append(ids, habit.ExternalID)
	}

	habits, err := store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(habits))
	}

	// Newest created first
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if habits[i].ExternalID != want {
			t.Errorf("habits[%d] = %s, want %s", i, habits[i].ExternalID, want)
		}
	}
}

func TestGetAllHabits_ActiveFilter(t *testing.T) {
	store := setupTestStore(t)

	habit := testHabit("Fresh habit")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	active, err := store.GetAllHabits(true)
	if err != nil {
		t.Fatalf("failed to get active habits: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("expected freshly written habit to be active, got %d habits", len(active))
	}
}
