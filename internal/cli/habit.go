package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/habits"
	"github.com/julianstephens/habitkit/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List all habits." default:"1"`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit with its recent history and stats."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a date."`
	Set    HabitSetCmd    `cmd:"" help:"Set a habit's completion state for a date."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description."`
	Emoji       string `help:"Display emoji."`
	Color       string `help:"Display color as a hex code, e.g. #10b981."`
	StreakGoal  string `help:"Streak goal: none, daily, weekly, or monthly." name:"streak-goal"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	result, err := ctx.Service.CreateHabit(habits.CreateHabitInput{
		Name:        c.Name,
		Description: c.Description,
		Emoji:       c.Emoji,
		Color:       c.Color,
		StreakGoal:  c.StreakGoal,
	})
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}
	if len(result.Errors) > 0 {
		return errors.New(strings.Join(result.Errors, "; "))
	}

	habit := result.Habit
	fmt.Printf("Created habit %s %s %s (%s)\n", swatch(habit.Color), habit.Emoji, habit.Name, habit.ExternalID)
	return nil
}

type HabitListCmd struct {
	Active  bool `help:"Show only habits with recent activity."`
	ShowIDs bool `help:"Show habit IDs." name:"show-ids"`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	list, err := ctx.Service.ListHabits(c.Active)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No habits found. Add one with 'habitkit habit add'.")
		return nil
	}

	settings, err := ctx.Service.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println(headingStyle.Render("Habits:"))
	today := ctx.Service.Now().UTC()
	for _, habit := range list {
		idStr := ""
		if c.ShowIDs {
			idStr = mutedStyle.Render(fmt.Sprintf(" (%s)", habit.ExternalID))
		}

		name := habit.Name
		if !settings.ShowHabitNames {
			name = ""
		}

		fmt.Printf("  %s %s %s%s  %s  %s\n",
			swatch(habit.Color), habit.Emoji, name, idStr,
			renderDays(habit.LastNDays(settings.CompactDays, today)),
			renderStreak(habit.CurrentStreak))
	}
	return nil
}

type HabitShowCmd struct {
	ID string `arg:"" help:"Habit external ID."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	habit, err := ctx.Service.GetHabit(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get habit: %w", err)
	}
	if habit == nil {
		return errors.New(habits.MsgHabitNotFound)
	}

	fmt.Printf("%s %s %s\n", swatch(habit.Color), habit.Emoji, headingStyle.Render(habit.Name))
	if habit.Description != "" {
		fmt.Printf("  %s\n", habit.Description)
	}
	fmt.Printf("  Goal:           %s\n", habit.StreakGoal)
	fmt.Printf("  Current streak: %s\n", renderStreak(habit.CurrentStreak))
	fmt.Printf("  Longest streak: %d\n", habit.LongestStreak)

	stats := habit.Stats()
	fmt.Printf("  Completions:    %d (%d skipped, %d failed)\n",
		stats.TotalCompletions, stats.TotalSkipped, stats.TotalFailed)

	records := habit.Completions.Records()
	if len(records) > 0 {
		fmt.Println("\n  Recent history:")
		start := len(records) - 10
		if start < 0 {
			start = 0
		}
		for _, rec := range records[start:] {
			line := fmt.Sprintf("    %s  %s", rec.Date, rec.State)
			if rec.Notes != nil {
				line += mutedStyle.Render("  " + *rec.Notes)
			}
			fmt.Println(line)
		}
	}
	return nil
}

type HabitToggleCmd struct {
	ID   string `arg:"" help:"Habit external ID."`
	Date string `help:"Date to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	result, err := ctx.Service.ToggleCompletion(c.ID, c.Date)
	if err != nil {
		return fmt.Errorf("failed to toggle habit: %w", err)
	}
	if len(result.Errors) > 0 {
		return errors.New(strings.Join(result.Errors, "; "))
	}

	date := c.Date
	if date == "" {
		date = ctx.Service.Today()
	}
	fmt.Printf("%s %s on %s: %s\n", result.Habit.Emoji, result.Habit.Name, date, result.NewState)
	return nil
}

type HabitSetCmd struct {
	ID    string `arg:"" help:"Habit external ID."`
	State string `arg:"" help:"Completion state: not_started, in_progress, completed, skipped, or failed."`
	Date  string `help:"Date to set (YYYY-MM-DD). Defaults to today."`
	Notes string `help:"Optional notes for the day."`
}

func (c *HabitSetCmd) Run(ctx *Context) error {
	var notes *string
	if c.Notes != "" {
		notes = &c.Notes
	}

	result, err := ctx.Service.UpdateCompletion(c.ID, c.Date, c.State, notes)
	if err != nil {
		return fmt.Errorf("failed to update completion: %w", err)
	}
	if len(result.Errors) > 0 {
		return errors.New(strings.Join(result.Errors, "; "))
	}

	fmt.Printf("%s %s on %s: %s\n",
		result.Habit.Emoji, result.Habit.Name, result.Completion.Date, result.Completion.State)
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit external ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	result, err := ctx.Service.DeleteHabit(c.ID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if !result.Success {
		return errors.New(strings.Join(result.Errors, "; "))
	}

	fmt.Println("Habit deleted.")
	return nil
}

// renderDays renders a compact day strip, oldest first
func renderDays(days []models.DayStatus) string {
	var b strings.Builder
	for _, day := range days {
		switch day.State {
		case models.StateCompleted:
			b.WriteString(completedStyle.Render("■"))
		case models.StateInProgress:
			b.WriteString("▧")
		case models.StateSkipped:
			b.WriteString(mutedStyle.Render("□"))
		case models.StateFailed:
			b.WriteString("✕")
		default:
			b.WriteString(mutedStyle.Render("·"))
		}
	}
	return b.String()
}

func renderStreak(n int) string {
	if n == 0 {
		return mutedStyle.Render("0")
	}
	return streakStyle.Render(fmt.Sprintf("🔥 %d", n))
}
