package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

func (s *Store) GetSettings() (models.UserSettings, error) {
	row := s.db.QueryRow(`
		SELECT external_id, compact_days, show_habit_names, created_at, updated_at
		FROM user_settings WHERE external_id = ?`, constants.SettingsExternalID)

	var settings models.UserSettings
	var createdAt, updatedAt string

	err := row.Scan(&settings.ExternalID, &settings.CompactDays, &settings.ShowHabitNames, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserSettings{}, fmt.Errorf("settings: %w", models.ErrNotFound)
		}
		return models.UserSettings{}, err
	}

	settings.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	settings.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.UserSettings) error {
	now := time.Now().UTC()
	createdAt := settings.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO user_settings (external_id, compact_days, show_habit_names, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			compact_days = excluded.compact_days,
			show_habit_names = excluded.show_habit_names,
			updated_at = excluded.updated_at`,
		constants.SettingsExternalID, settings.CompactDays, settings.ShowHabitNames,
		createdAt.Format(time.RFC3339), now.Format(time.RFC3339))

	return err
}
