package models

import (
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
)

// UserSettings represents the single application-wide preference record
type UserSettings struct {
	ExternalID     string    `json:"external_id"`
	CompactDays    int       `json:"compact_days"`     // number of days shown in the compact list (1-7)
	ShowHabitNames bool      `json:"show_habit_names"` // whether habit names are shown in the compact list
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings record created on first access
func DefaultSettings() UserSettings {
	return UserSettings{
		ExternalID:     constants.SettingsExternalID,
		CompactDays:    constants.DefaultCompactDays,
		ShowHabitNames: constants.DefaultShowHabitNames,
	}
}
