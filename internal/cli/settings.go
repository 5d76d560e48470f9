package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/habits"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	CompactDays    *int  `help:"Number of recent days shown in the compact list (1-7)." name:"compact-days"`
	ShowHabitNames *bool `help:"Show habit names in the compact list." name:"show-habit-names"`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if c.CompactDays == nil && c.ShowHabitNames == nil {
		settings, err := ctx.Service.Settings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}

		fmt.Println("Current Settings:")
		fmt.Printf("  Compact Days:     %d\n", settings.CompactDays)
		fmt.Printf("  Show Habit Names: %v\n", settings.ShowHabitNames)
		if !c.List {
			fmt.Println("\nUse --compact-days or --show-habit-names to update.")
		}
		return nil
	}

	result, err := ctx.Service.UpdateSettings(habits.UpdateSettingsInput{
		CompactDays:    c.CompactDays,
		ShowHabitNames: c.ShowHabitNames,
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if len(result.Errors) > 0 {
		return errors.New(strings.Join(result.Errors, "; "))
	}

	fmt.Println("Settings updated successfully.")
	return nil
}
