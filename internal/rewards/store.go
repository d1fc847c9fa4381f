package rewards

import (
	"database/sql"
	"fmt"

	"github.com/play2learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetSettings() (*models.RewardSettings, error) {
	var settings models.RewardSettings
	err := s.db.QueryRow(`
		SELECT points_per_correct, perfect_bonus, daily_attempt_limit, updated_at
		FROM reward_settings WHERE id = 1
	`).Scan(&settings.PointsPerCorrect, &settings.PerfectBonus, &settings.DailyAttemptLimit, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward settings: %w", err)
	}
	return &settings, nil
}

func (s *Store) UpdateSettings(req models.UpdateRewardSettingsRequest) (*models.RewardSettings, error) {
	var settings models.RewardSettings
	err := s.db.QueryRow(`
		UPDATE reward_settings SET
			points_per_correct  = COALESCE($1, points_per_correct),
			perfect_bonus       = COALESCE($2, perfect_bonus),
			daily_attempt_limit = COALESCE($3, daily_attempt_limit),
			updated_at          = NOW()
		WHERE id = 1
		RETURNING points_per_correct, perfect_bonus, daily_attempt_limit, updated_at
	`, req.PointsPerCorrect, req.PerfectBonus, req.DailyAttemptLimit).
		Scan(&settings.PointsPerCorrect, &settings.PerfectBonus, &settings.DailyAttemptLimit, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update reward settings: %w", err)
	}
	return &settings, nil
}

func (s *Store) InsertLedgerEntry(userID int64, points int, reason string, attemptID *int64) error {
	_, err := s.db.Exec(`
		INSERT INTO reward_ledger (user_id, points, reason, attempt_id)
		VALUES ($1, $2, $3, $4)
	`, userID, points, reason, attemptID)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

func (s *Store) TotalPoints(userID int64) (int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(points), 0) FROM reward_ledger WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points: %w", err)
	}
	return total, nil
}

func (s *Store) RecentEntries(userID int64, limit int) ([]models.RewardLedgerEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, points, reason, attempt_id, created_at
		FROM reward_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.RewardLedgerEntry
	for rows.Next() {
		var e models.RewardLedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Points, &e.Reason, &e.AttemptID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
