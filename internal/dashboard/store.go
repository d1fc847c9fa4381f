package dashboard

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/play2learn/backend/internal/models"
)

var ErrChildNotFound = errors.New("child not found")
var ErrAlreadyLinked = errors.New("child already linked")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LinkChild attaches a student account to a parent by email.
func (s *Store) LinkChild(parentID int64, childEmail string) error {
	var childID int64
	err := s.db.QueryRow(`
		SELECT id FROM users WHERE email = $1 AND role = 'student'
	`, childEmail).Scan(&childID)
	if err == sql.ErrNoRows {
		return ErrChildNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up child: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO parent_children (parent_id, child_id)
		VALUES ($1, $2)
		ON CONFLICT (parent_id, child_id) DO NOTHING
	`, parentID, childID)
	if err != nil {
		return fmt.Errorf("failed to link child: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyLinked
	}
	return nil
}

// ChildSummaries returns each linked student's profile and attempt totals.
func (s *Store) ChildSummaries(parentID int64) ([]models.ChildSummary, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.name, u.grade,
		       COALESCE(lp.current_profile, 1), COALESCE(lp.current_level, 0), lp.last_score,
		       COUNT(qa.id) FILTER (WHERE qa.status = 'graded'),
		       MAX(qa.created_at)
		FROM parent_children pc
		JOIN users u ON u.id = pc.child_id
		LEFT JOIN learner_profiles lp ON lp.user_id = u.id
		LEFT JOIN quiz_attempts qa ON qa.student_id = u.id
		WHERE pc.parent_id = $1
		GROUP BY u.id, u.name, u.grade, lp.current_profile, lp.current_level, lp.last_score
		ORDER BY u.name
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child summaries: %w", err)
	}
	defer rows.Close()

	var out []models.ChildSummary
	for rows.Next() {
		var c models.ChildSummary
		if err := rows.Scan(&c.ChildID, &c.Name, &c.Grade,
			&c.CurrentProfile, &c.CurrentLevel, &c.LastScore,
			&c.AttemptCount, &c.LastAttemptAt); err != nil {
			return nil, fmt.Errorf("failed to scan child summary: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SchoolAggregates computes school-wide attempt stats for staff dashboards.
func (s *Store) SchoolAggregates(schoolID int64) (*models.SchoolDashboardResponse, error) {
	resp := &models.SchoolDashboardResponse{}

	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM users WHERE school_id = $1 AND role = 'student'
	`, schoolID).Scan(&resp.StudentCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(AVG(score), 0)
		FROM quiz_attempts
		WHERE school_id = $1 AND status = 'graded'
	`, schoolID).Scan(&resp.GradedAttempts, &resp.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attempts: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT aq.operation,
		       COUNT(*) FILTER (WHERE aq.selected_index IS NOT NULL),
		       COUNT(*) FILTER (WHERE aq.is_correct)
		FROM attempt_questions aq
		JOIN quiz_attempts qa ON qa.id = aq.attempt_id
		WHERE qa.school_id = $1 AND qa.status = 'graded'
		GROUP BY aq.operation
		ORDER BY aq.operation
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate operations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oa models.OperationAccuracy
		if err := rows.Scan(&oa.Operation, &oa.Answered, &oa.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan operation accuracy: %w", err)
		}
		if oa.Answered > 0 {
			oa.Accuracy = float64(oa.Correct) / float64(oa.Answered)
		}
		resp.OperationAccuracy = append(resp.OperationAccuracy, oa)
	}
	if resp.OperationAccuracy == nil {
		resp.OperationAccuracy = []models.OperationAccuracy{}
	}
	return resp, rows.Err()
}
