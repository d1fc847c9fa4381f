package models

import "time"

type QuizType string

const (
	QuizPlacement QuizType = "placement"
	QuizRegular   QuizType = "regular"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptGraded     AttemptStatus = "graded"
)

// AttemptQuestion is the snapshot of a question taken for one attempt. The
// prompt and choices are copied so later edits to the source question cannot
// change an already-served quiz.
type AttemptQuestion struct {
	ID            int64    `json:"id"`
	AttemptID     int64    `json:"attempt_id"`
	Position      int      `json:"position"`
	QuestionID    int64    `json:"question_id"`
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices"`
	CorrectIndex  int      `json:"correct_index"`
	SelectedIndex *int     `json:"selected_index,omitempty"`
	IsCorrect     bool     `json:"is_correct"`
	Difficulty    int      `json:"difficulty"`
	Operation     string   `json:"operation"`
}

type QuizAttempt struct {
	ID             int64             `json:"id"`
	StudentID      int64             `json:"student_id"`
	SchoolID       *int64            `json:"school_id,omitempty"`
	QuizType       QuizType          `json:"quiz_type"`
	Status         AttemptStatus     `json:"status"`
	Score          int               `json:"score"`
	CorrectCount   int               `json:"correct_count"`
	TotalQuestions int               `json:"total_questions"`
	ResultBand     *string           `json:"result_band,omitempty"`
	NewProfile     *int              `json:"new_profile,omitempty"`
	Questions      []AttemptQuestion `json:"questions,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	GradedAt       *time.Time        `json:"graded_at,omitempty"`
}

// ── API Request/Response Types ────────────────────────────

type StartQuizRequest struct {
	QuizType QuizType `json:"quiz_type"`
	Count    int      `json:"count"`
}

// ServedQuestion is what the client sees when a quiz starts: no correct
// answer, no difficulty.
type ServedQuestion struct {
	Position  int      `json:"position"`
	Prompt    string   `json:"prompt"`
	Operation string   `json:"operation"`
	Choices   []string `json:"choices"`
}

type StartQuizResponse struct {
	Success   bool             `json:"success"`
	AttemptID int64            `json:"attempt_id"`
	Questions []ServedQuestion `json:"questions"`
	Total     int              `json:"total"`
}

type SubmitQuizRequest struct {
	AttemptID int64  `json:"attempt_id"`
	Answers   []*int `json:"answers"`
}

type SubmitQuizResponse struct {
	Success            bool              `json:"success"`
	Score              int               `json:"score"`
	Correct            int               `json:"correct"`
	Total              int               `json:"total"`
	ResultBand         string            `json:"result_band"`
	NewProfile         int               `json:"new_profile"`
	OperationBreakdown map[string]int    `json:"operation_breakdown"`
	PointsAwarded      int               `json:"points_awarded"`
	Questions          []AttemptQuestion `json:"questions"`
}

type AttemptListResponse struct {
	Attempts []QuizAttempt `json:"attempts"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
