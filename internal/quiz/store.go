package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/play2learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Question Pool ───────────────────────────────────────

// GetActiveQuestions reads the serving pool: active questions inside the
// difficulty window, platform-wide plus the school's own content.
func (s *Store) GetActiveQuestions(schoolID *int64, minDiff, maxDiff int) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, school_id, prompt, choices, correct_index, difficulty, operation, level, is_active, created_at
		 FROM questions
		 WHERE is_active AND difficulty BETWEEN $1 AND $2
		   AND (school_id IS NULL OR school_id = $3)`,
		minDiff, maxDiff, schoolID,
	)
	if err != nil {
		return nil, fmt.Errorf("get question pool: %w", err)
	}
	defer rows.Close()

	var pool []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.SchoolID, &q.Prompt, pq.Array(&q.Choices),
			&q.CorrectIndex, &q.Difficulty, &q.Operation, &q.Level, &q.IsActive, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		pool = append(pool, q)
	}
	return pool, rows.Err()
}

func (s *Store) CreateQuestion(schoolID *int64, req models.CreateQuestionRequest) (*models.Question, error) {
	var q models.Question
	err := s.db.QueryRow(
		`INSERT INTO questions (school_id, prompt, choices, correct_index, difficulty, operation, level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, school_id, prompt, choices, correct_index, difficulty, operation, level, is_active, created_at`,
		schoolID, req.Prompt, pq.Array(req.Choices), req.CorrectIndex,
		req.Difficulty, NormalizeOperation(req.Operation), req.Level,
	).Scan(&q.ID, &q.SchoolID, &q.Prompt, pq.Array(&q.Choices),
		&q.CorrectIndex, &q.Difficulty, &q.Operation, &q.Level, &q.IsActive, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &q, nil
}

func (s *Store) ListQuestions(schoolID *int64, page, pageSize int) ([]models.Question, int, error) {
	var total int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM questions WHERE school_id IS NULL OR school_id = $1`, schoolID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, school_id, prompt, choices, correct_index, difficulty, operation, level, is_active, created_at
		 FROM questions
		 WHERE school_id IS NULL OR school_id = $1
		 ORDER BY id DESC LIMIT $2 OFFSET $3`,
		schoolID, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.SchoolID, &q.Prompt, pq.Array(&q.Choices),
			&q.CorrectIndex, &q.Difficulty, &q.Operation, &q.Level, &q.IsActive, &q.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

// SetQuestionActive is the only permitted mutation of an authored question.
func (s *Store) SetQuestionActive(questionID int64, active bool) error {
	res, err := s.db.Exec(`UPDATE questions SET is_active = $1 WHERE id = $2`, active, questionID)
	if err != nil {
		return fmt.Errorf("set question active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Attempts ────────────────────────────────────────────

func (s *Store) HasPlacementAttempt(studentID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM quiz_attempts WHERE student_id = $1 AND quiz_type = 'placement')`,
		studentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check placement attempt: %w", err)
	}
	return exists, nil
}

// CreateAttempt inserts the attempt and its question snapshots in one
// transaction. The partial unique index on placement attempts backstops the
// existence check under concurrent starts.
func (s *Store) CreateAttempt(ctx context.Context, studentID int64, schoolID *int64, quizType models.QuizType, selected []models.Question) (*models.QuizAttempt, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var attempt models.QuizAttempt
	err = tx.QueryRow(
		`INSERT INTO quiz_attempts (student_id, school_id, quiz_type, total_questions)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, student_id, school_id, quiz_type, status, score, correct_count, total_questions, created_at`,
		studentID, schoolID, quizType, len(selected),
	).Scan(&attempt.ID, &attempt.StudentID, &attempt.SchoolID, &attempt.QuizType,
		&attempt.Status, &attempt.Score, &attempt.CorrectCount, &attempt.TotalQuestions, &attempt.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "idx_attempts_one_placement") {
			return nil, ErrPlacementExists
		}
		return nil, fmt.Errorf("insert attempt: %w", err)
	}

	for i, q := range selected {
		var aq models.AttemptQuestion
		err := tx.QueryRow(
			`INSERT INTO attempt_questions
			 (attempt_id, position, question_id, prompt, choices, correct_index, difficulty, operation)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			attempt.ID, i, q.ID, q.Prompt, pq.Array(q.Choices),
			q.CorrectIndex, q.Difficulty, NormalizeOperation(q.Operation),
		).Scan(&aq.ID)
		if err != nil {
			return nil, fmt.Errorf("insert attempt question: %w", err)
		}
		aq.AttemptID = attempt.ID
		aq.Position = i
		aq.QuestionID = q.ID
		aq.Prompt = q.Prompt
		aq.Choices = q.Choices
		aq.CorrectIndex = q.CorrectIndex
		aq.Difficulty = q.Difficulty
		aq.Operation = NormalizeOperation(q.Operation)
		attempt.Questions = append(attempt.Questions, aq)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attempt: %w", err)
	}
	return &attempt, nil
}

func (s *Store) GetAttempt(attemptID int64) (*models.QuizAttempt, error) {
	var a models.QuizAttempt
	err := s.db.QueryRow(
		`SELECT id, student_id, school_id, quiz_type, status, score, correct_count,
		        total_questions, result_band, new_profile, created_at, graded_at
		 FROM quiz_attempts WHERE id = $1`,
		attemptID,
	).Scan(&a.ID, &a.StudentID, &a.SchoolID, &a.QuizType, &a.Status, &a.Score,
		&a.CorrectCount, &a.TotalQuestions, &a.ResultBand, &a.NewProfile, &a.CreatedAt, &a.GradedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, attempt_id, position, question_id, prompt, choices, correct_index,
		        selected_index, is_correct, difficulty, operation
		 FROM attempt_questions WHERE attempt_id = $1 ORDER BY position`,
		attemptID,
	)
	if err != nil {
		return nil, fmt.Errorf("get attempt questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q models.AttemptQuestion
		if err := rows.Scan(&q.ID, &q.AttemptID, &q.Position, &q.QuestionID, &q.Prompt,
			pq.Array(&q.Choices), &q.CorrectIndex, &q.SelectedIndex, &q.IsCorrect,
			&q.Difficulty, &q.Operation); err != nil {
			return nil, fmt.Errorf("scan attempt question: %w", err)
		}
		a.Questions = append(a.Questions, q)
	}
	return &a, rows.Err()
}

// FinalizeAttempt persists the graded answers, the aggregates, and the
// learner profile update as one transaction. The attempt row update is a
// compare-and-swap on status, so a concurrent duplicate submission either
// grades the attempt or gets ErrAlreadyGraded; partial writes are never
// observable.
func (s *Store) FinalizeAttempt(ctx context.Context, attempt *models.QuizAttempt, result GradeResult, band string, newProfile int) error {
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE quiz_attempts
		 SET status = 'graded', score = $1, correct_count = $2, result_band = $3,
		     new_profile = $4, graded_at = NOW()
		 WHERE id = $5 AND status = 'in_progress'`,
		result.Score, result.CorrectCount, band, newProfile, attempt.ID,
	)
	if err != nil {
		return fmt.Errorf("finalize attempt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyGraded
	}

	for _, q := range attempt.Questions {
		if _, err := tx.Exec(
			`UPDATE attempt_questions SET selected_index = $1, is_correct = $2 WHERE id = $3`,
			q.SelectedIndex, q.IsCorrect, q.ID,
		); err != nil {
			return fmt.Errorf("update attempt question: %w", err)
		}
	}

	// Touch updated_at explicitly; profile mutation points stay visible.
	profileColumn := "current_level"
	if attempt.QuizType == models.QuizPlacement {
		profileColumn = "current_profile"
	}
	if _, err := tx.Exec(
		fmt.Sprintf(`UPDATE learner_profiles
		 SET %s = $1, last_score = $2, last_breakdown = $3, updated_at = NOW()
		 WHERE user_id = $4`, profileColumn),
		newProfile, result.Score, breakdownJSON, attempt.StudentID,
	); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return tx.Commit()
}

func (s *Store) ListAttempts(studentID int64, page, pageSize int) ([]models.QuizAttempt, int, error) {
	var total int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM quiz_attempts WHERE student_id = $1`, studentID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attempts: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, student_id, school_id, quiz_type, status, score, correct_count,
		        total_questions, result_band, new_profile, created_at, graded_at
		 FROM quiz_attempts WHERE student_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		studentID, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.StudentID, &a.SchoolID, &a.QuizType, &a.Status,
			&a.Score, &a.CorrectCount, &a.TotalQuestions, &a.ResultBand, &a.NewProfile,
			&a.CreatedAt, &a.GradedAt); err != nil {
			return nil, 0, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, total, rows.Err()
}

// ── Learner Profiles ────────────────────────────────────

func (s *Store) GetOrCreateProfile(userID int64, defaultAttempts int) (*models.LearnerProfile, error) {
	if _, err := s.db.Exec(
		`INSERT INTO learner_profiles (user_id, attempts_remaining_today)
		 VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, defaultAttempts,
	); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	var p models.LearnerProfile
	var breakdownJSON []byte
	err := s.db.QueryRow(
		`SELECT user_id, current_profile, current_level, last_score, last_breakdown,
		        adaptive_topics, attempts_remaining_today, updated_at
		 FROM learner_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.CurrentProfile, &p.CurrentLevel, &p.LastScore, &breakdownJSON,
		pq.Array(&p.AdaptiveTopics), &p.AttemptsRemainingToday, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &p.LastBreakdown); err != nil {
			return nil, fmt.Errorf("unmarshal breakdown: %w", err)
		}
	}
	return &p, nil
}

// ConsumeDailyAttempt atomically decrements the remaining attempt counter;
// returns false when the learner is out of attempts for the day.
func (s *Store) ConsumeDailyAttempt(userID int64) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE learner_profiles
		 SET attempts_remaining_today = attempts_remaining_today - 1, updated_at = NOW()
		 WHERE user_id = $1 AND attempts_remaining_today > 0`,
		userID,
	)
	if err != nil {
		return false, fmt.Errorf("consume attempt: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RestoreDailyAttempt gives back an attempt consumed by a quiz start that
// failed before an attempt row was created.
func (s *Store) RestoreDailyAttempt(userID int64) error {
	_, err := s.db.Exec(
		`UPDATE learner_profiles
		 SET attempts_remaining_today = attempts_remaining_today + 1, updated_at = NOW()
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("restore attempt: %w", err)
	}
	return nil
}

func (s *Store) SetAdaptiveTopics(userID int64, topics []string) error {
	_, err := s.db.Exec(
		`UPDATE learner_profiles SET adaptive_topics = $1, updated_at = NOW() WHERE user_id = $2`,
		pq.Array(topics), userID,
	)
	return err
}

// ResetDailyAttempts restores every learner's daily allowance; called by the
// midnight scheduler.
func (s *Store) ResetDailyAttempts(limit int) (int64, error) {
	res, err := s.db.Exec(
		`UPDATE learner_profiles SET attempts_remaining_today = $1, updated_at = NOW()`,
		limit,
	)
	if err != nil {
		return 0, fmt.Errorf("reset daily attempts: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
