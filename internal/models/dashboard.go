package models

import "time"

// ChildSummary is one linked student's standing on the parent dashboard.
type ChildSummary struct {
	ChildID        int64      `json:"child_id"`
	Name           string     `json:"name"`
	Grade          *int       `json:"grade,omitempty"`
	CurrentProfile int        `json:"current_profile"`
	CurrentLevel   int        `json:"current_level"`
	LastScore      *int       `json:"last_score,omitempty"`
	AttemptCount   int        `json:"attempt_count"`
	LastAttemptAt  *time.Time `json:"last_attempt_at,omitempty"`
}

type ParentDashboardResponse struct {
	Children []ChildSummary `json:"children"`
}

type LinkChildRequest struct {
	ChildEmail string `json:"child_email"`
}

// OperationAccuracy aggregates answer accuracy for one operation across a
// school's graded attempts.
type OperationAccuracy struct {
	Operation string  `json:"operation"`
	Answered  int     `json:"answered"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

type SchoolDashboardResponse struct {
	StudentCount      int                 `json:"student_count"`
	GradedAttempts    int                 `json:"graded_attempts"`
	AverageScore      float64             `json:"average_score"`
	OperationAccuracy []OperationAccuracy `json:"operation_accuracy"`
}
