package cli

import (
	"testing"

	"github.com/julianstephens/habitkit/internal/habits"
	"github.com/julianstephens/habitkit/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()

	path := t.TempDir() + "/habitkit.db"
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	return &Context{
		Config:  path,
		Store:   store,
		Service: habits.New(store),
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := newTestContext(t)
	cmd := &SeedCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	list, err := ctx.Service.ListHabits(false)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 habit after repeated seeding, got %d", len(list))
	}

	habit := list[0]
	if habit.Name != seedHabitName {
		t.Errorf("name = %q, want %q", habit.Name, seedHabitName)
	}
	if habit.Color != "#10b981" {
		t.Errorf("color = %q, want #10b981", habit.Color)
	}
	if habit.Emoji != "🏃" {
		t.Errorf("emoji = %q", habit.Emoji)
	}
}
