package models

import "time"

// RewardSettings is the single-row platform configuration for points and
// daily attempt limits. Admin writes invalidate the in-process cache.
type RewardSettings struct {
	PointsPerCorrect  int       `json:"points_per_correct"`
	PerfectBonus      int       `json:"perfect_bonus"`
	DailyAttemptLimit int       `json:"daily_attempt_limit"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type UpdateRewardSettingsRequest struct {
	PointsPerCorrect  *int `json:"points_per_correct,omitempty"`
	PerfectBonus      *int `json:"perfect_bonus,omitempty"`
	DailyAttemptLimit *int `json:"daily_attempt_limit,omitempty"`
}

type RewardLedgerEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	AttemptID *int64    `json:"attempt_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RewardBalanceResponse struct {
	TotalPoints int                 `json:"total_points"`
	Recent      []RewardLedgerEntry `json:"recent"`
}
