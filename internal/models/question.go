package models

import "time"

// Question is an authored quiz question. Immutable once created except for
// the is_active moderation toggle.
type Question struct {
	ID           int64     `json:"id"`
	SchoolID     *int64    `json:"school_id,omitempty"`
	Prompt       string    `json:"prompt"`
	Choices      []string  `json:"choices"`
	CorrectIndex int       `json:"correct_index"`
	Difficulty   int       `json:"difficulty"`
	Operation    string    `json:"operation"`
	Level        int       `json:"level"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateQuestionRequest struct {
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Difficulty   int      `json:"difficulty"`
	Operation    string   `json:"operation"`
	Level        int      `json:"level"`
}

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}
