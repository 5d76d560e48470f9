package constants

const (
	AppName            = "habitkit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitkit/habitkit.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Settings keys
	SettingsExternalID = "default-settings"

	// Default Settings Values
	DefaultCompactDays    = 5
	DefaultShowHabitNames = true

	// Habit defaults
	DefaultEmoji      = "⚡"
	DefaultColor      = "#a855f7"
	DefaultStreakGoal = "none"

	// Habit name length bounds
	HabitNameMinLen = 1
	HabitNameMaxLen = 100

	// CompactDays bounds (also the clamp range for last-N-days views)
	CompactDaysMin = 1
	CompactDaysMax = 7

	// ActiveWindowDays is the lookback window for the "active habits" filter
	ActiveWindowDays = 30

	// Server defaults
	DefaultListenAddr = ":8080"
	DefaultCORSOrigin = "http://localhost:5173"
)
