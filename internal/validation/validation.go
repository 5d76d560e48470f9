package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Result contains all detected field violations for an entity
type Result struct {
	Violations []string
}

// HasViolations returns true if any field failed validation
func (r *Result) HasViolations() bool {
	return len(r.Violations) > 0
}

func (r *Result) add(format string, args ...interface{}) {
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

// ValidateHabit checks every habit field and collects all violations,
// not just the first
func ValidateHabit(h models.Habit) Result {
	var result Result

	nameLen := utf8.RuneCountInString(h.Name)
	if nameLen < constants.HabitNameMinLen {
		result.add("Name can't be blank")
	} else if nameLen > constants.HabitNameMaxLen {
		result.add("Name is too long (maximum is %d characters)", constants.HabitNameMaxLen)
	}

	if h.Emoji == "" {
		result.add("Emoji can't be blank")
	}

	if !colorPattern.MatchString(h.Color) {
		result.add("Color must be a hex color in #RRGGBB format")
	}

	if !h.StreakGoal.Valid() {
		result.add("Streak goal %q is not a recognized goal", h.StreakGoal)
	}

	if h.ExternalID == "" {
		result.add("External ID can't be blank")
	}

	return result
}

// ValidateSettings checks the user settings fields and collects all violations
func ValidateSettings(s models.UserSettings) Result {
	var result Result

	if s.CompactDays < constants.CompactDaysMin || s.CompactDays > constants.CompactDaysMax {
		result.add("Compact days must be between %d and %d", constants.CompactDaysMin, constants.CompactDaysMax)
	}

	return result
}
