package cli

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/habits"
)

// SeedCmd populates a fresh database with default settings and a sample
// habit. It is idempotent: re-running against a seeded database changes
// nothing.
type SeedCmd struct{}

const seedHabitName = "Morning Exercise"

func (c *SeedCmd) Run(ctx *Context) error {
	if _, err := ctx.Service.Settings(); err != nil {
		return fmt.Errorf("failed to ensure settings: %w", err)
	}
	fmt.Println("✓ Default settings present")

	existing, err := ctx.Service.ListHabits(false)
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	for _, h := range existing {
		if h.Name == seedHabitName {
			fmt.Printf("✓ Sample habit %q already exists\n", seedHabitName)
			return nil
		}
	}

	result, err := ctx.Service.CreateHabit(habits.CreateHabitInput{
		Name:        seedHabitName,
		Description: "30 minutes of exercise to start the day",
		Emoji:       "🏃",
		Color:       "#10b981",
		StreakGoal:  "daily",
	})
	if err != nil {
		return fmt.Errorf("failed to create sample habit: %w", err)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("sample habit rejected: %v", result.Errors)
	}

	fmt.Printf("✓ Created sample habit %q (%s)\n", seedHabitName, result.Habit.ExternalID)
	return nil
}
