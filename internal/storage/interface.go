package storage

import "github.com/julianstephens/habitkit/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Migrate applies pending schema migrations, opening the database
	// without the schema version check Load performs. It returns the
	// number of migrations applied.
	Migrate(logFn func(string)) (int, error)

	// Settings
	// GetSettings returns the singleton settings row. It returns an error
	// wrapping models.ErrNotFound when the row has not been created yet.
	GetSettings() (models.UserSettings, error)
	SaveSettings(models.UserSettings) error

	// Habits
	AddHabit(models.Habit) error
	// GetHabit looks a habit up by its public external id. It returns an
	// error wrapping models.ErrNotFound when no such habit exists.
	GetHabit(externalID string) (models.Habit, error)
	// GetAllHabits returns habits ordered newest-created first. When
	// activeOnly is set, only habits updated within the active window are
	// returned.
	GetAllHabits(activeOnly bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit and its embedded completions permanently.
	DeleteHabit(externalID string) error

	// Utils
	GetConfigPath() string
}
