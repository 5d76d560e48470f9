package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

const habitColumns = `id, external_id, name, description, emoji, color, streak_goal,
       completions, current_streak, longest_streak, created_at, updated_at`

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var completionsJSON []byte
	var createdAt, updatedAt string

	err := scan(
		&h.ID, &h.ExternalID, &h.Name, &h.Description, &h.Emoji, &h.Color, &h.StreakGoal,
		&completionsJSON, &h.CurrentStreak, &h.LongestStreak, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.Habit{}, err
	}

	h.Completions = models.CompletionLog{}
	if len(completionsJSON) > 0 {
		if err := json.Unmarshal(completionsJSON, &h.Completions); err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse completions for habit %s: %w", h.ExternalID, err)
		}
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ExternalID, err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ExternalID, err)
	}

	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(externalID string) (models.Habit, error) {
	row := s.db.QueryRow(
		"SELECT "+habitColumns+" FROM habits WHERE external_id = $1", externalID)

	habit, err := scanHabit(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, fmt.Errorf("habit %q: %w", externalID, models.ErrNotFound)
		}
		return models.Habit{}, err
	}

	return habit, nil
}

func (s *Store) GetAllHabits(activeOnly bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits"
	var args []any
	if activeOnly {
		cutoff := time.Now().UTC().AddDate(0, 0, -constants.ActiveWindowDays).Format(time.RFC3339)
		query += " WHERE updated_at >= $1"
		args = append(args, cutoff)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	completions := habit.Completions
	if completions == nil {
		completions = models.CompletionLog{}
	}
	completionsJSON, err := json.Marshal(completions)
	if err != nil {
		return fmt.Errorf("failed to marshal completions: %w", err)
	}

	now := time.Now().UTC()
	createdAt := habit.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (external_id, name, description, emoji, color, streak_goal,
			completions, current_streak, longest_streak, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (external_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			emoji = excluded.emoji,
			color = excluded.color,
			streak_goal = excluded.streak_goal,
			completions = excluded.completions,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			updated_at = excluded.updated_at`,
		habit.ExternalID, habit.Name, habit.Description, habit.Emoji, habit.Color,
		string(habit.StreakGoal), completionsJSON, habit.CurrentStreak, habit.LongestStreak,
		createdAt.Format(time.RFC3339), now.Format(time.RFC3339))

	return err
}

func (s *Store) DeleteHabit(externalID string) error {
	result, err := s.db.Exec("DELETE FROM habits WHERE external_id = $1", externalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %q: %w", externalID, models.ErrNotFound)
	}

	return nil
}
