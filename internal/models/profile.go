package models

import "time"

// LearnerProfile tracks a student's placement profile (trial track, 1-5) and
// adaptive level (main track, 0-20) alongside daily attempt bookkeeping.
type LearnerProfile struct {
	UserID                 int64          `json:"user_id"`
	CurrentProfile         int            `json:"current_profile"`
	CurrentLevel           int            `json:"current_level"`
	LastScore              *int           `json:"last_score,omitempty"`
	LastBreakdown          map[string]int `json:"last_breakdown,omitempty"`
	AdaptiveTopics         []string       `json:"adaptive_topics,omitempty"`
	AttemptsRemainingToday int            `json:"attempts_remaining_today"`
	UpdatedAt              time.Time      `json:"updated_at"`
}
