package quiz

import (
	"context"
	"fmt"
	"log"

	"github.com/play2learn/backend/internal/models"
	"github.com/play2learn/backend/internal/rewards"
)

const (
	defaultQuizSize = 15
	maxQuizSize     = 40
)

// attemptStore is the persistence surface the service orchestrates. *Store
// is the production implementation; tests substitute an in-memory fake.
type attemptStore interface {
	GetActiveQuestions(schoolID *int64, minDiff, maxDiff int) ([]models.Question, error)
	CreateQuestion(schoolID *int64, req models.CreateQuestionRequest) (*models.Question, error)
	ListQuestions(schoolID *int64, page, pageSize int) ([]models.Question, int, error)
	SetQuestionActive(questionID int64, active bool) error
	HasPlacementAttempt(studentID int64) (bool, error)
	CreateAttempt(ctx context.Context, studentID int64, schoolID *int64, quizType models.QuizType, selected []models.Question) (*models.QuizAttempt, error)
	GetAttempt(attemptID int64) (*models.QuizAttempt, error)
	FinalizeAttempt(ctx context.Context, attempt *models.QuizAttempt, result GradeResult, band string, newProfile int) error
	ListAttempts(studentID int64, page, pageSize int) ([]models.QuizAttempt, int, error)
	GetOrCreateProfile(userID int64, defaultAttempts int) (*models.LearnerProfile, error)
	ConsumeDailyAttempt(userID int64) (bool, error)
	RestoreDailyAttempt(userID int64) error
	SetAdaptiveTopics(userID int64, topics []string) error
}

type pointsAwarder interface {
	DailyAttemptLimit() int
	AwardQuizPoints(userID, attemptID int64, questions []models.AttemptQuestion) (int, error)
}

type Service struct {
	store   attemptStore
	rewards pointsAwarder
}

func NewService(store *Store, rewardsService *rewards.Service) *Service {
	return &Service{store: store, rewards: rewardsService}
}

// StartQuiz draws a question set for the student and opens an attempt.
// Placement quizzes are one-time-only and sample the full difficulty range;
// regular quizzes sample the student's current level window.
func (s *Service) StartQuiz(ctx context.Context, studentID int64, schoolID *int64, req models.StartQuizRequest) (*models.StartQuizResponse, error) {
	if req.QuizType == "" {
		req.QuizType = models.QuizRegular
	}
	if req.QuizType != models.QuizPlacement && req.QuizType != models.QuizRegular {
		return nil, fmt.Errorf("invalid quiz type %q", req.QuizType)
	}
	count := req.Count
	if count <= 0 {
		count = defaultQuizSize
	}
	if count > maxQuizSize {
		count = maxQuizSize
	}

	profile, err := s.store.GetOrCreateProfile(studentID, s.rewards.DailyAttemptLimit())
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if req.QuizType == models.QuizPlacement {
		exists, err := s.store.HasPlacementAttempt(studentID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrPlacementExists
		}
	}

	minDiff, maxDiff := 1, 10
	if req.QuizType == models.QuizRegular {
		minDiff, maxDiff = DifficultyWindow(profile.CurrentLevel)
	}

	pool, err := s.store.GetActiveQuestions(schoolID, minDiff, maxDiff)
	if err != nil {
		return nil, err
	}
	// Regular quizzes widen to the full range before giving up on a thin pool.
	if len(pool) < count && req.QuizType == models.QuizRegular {
		pool, err = s.store.GetActiveQuestions(schoolID, 1, 10)
		if err != nil {
			return nil, err
		}
	}

	selected, err := SelectQuestions(pool, count)
	if err != nil {
		return nil, err
	}

	// Consume only once a question set is in hand; an empty pool must not
	// burn one of the learner's daily attempts.
	ok, err := s.store.ConsumeDailyAttempt(studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAttemptLimit
	}

	attempt, err := s.store.CreateAttempt(ctx, studentID, schoolID, req.QuizType, selected)
	if err != nil {
		if restoreErr := s.store.RestoreDailyAttempt(studentID); restoreErr != nil {
			log.Printf("WARN: failed to restore daily attempt for user %d: %v", studentID, restoreErr)
		}
		return nil, err
	}

	served := make([]models.ServedQuestion, len(attempt.Questions))
	for i, q := range attempt.Questions {
		served[i] = models.ServedQuestion{
			Position:  q.Position,
			Prompt:    q.Prompt,
			Operation: q.Operation,
			Choices:   q.Choices,
		}
	}

	return &models.StartQuizResponse{
		Success:   true,
		AttemptID: attempt.ID,
		Questions: served,
		Total:     len(served),
	}, nil
}

// SubmitQuiz grades the submitted answers, runs the transition policy for
// the attempt's track, and persists grades, aggregates, and the updated
// profile atomically.
func (s *Service) SubmitQuiz(ctx context.Context, studentID int64, req models.SubmitQuizRequest) (*models.SubmitQuizResponse, error) {
	attempt, err := s.store.GetAttempt(req.AttemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, ErrNotFound
	}
	if attempt.Status != models.AttemptInProgress {
		return nil, ErrAlreadyGraded
	}

	profile, err := s.store.GetOrCreateProfile(studentID, s.rewards.DailyAttemptLimit())
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	result := GradeAnswers(attempt.Questions, req.Answers)

	var newProfile int
	if attempt.QuizType == models.QuizPlacement {
		newProfile = SimpleThreshold(profile.CurrentProfile, result.Score)
	} else {
		newProfile = WeightedPromotion(profile.CurrentLevel, attempt.Questions)
	}
	band := ResultBand(result.Score)

	if err := s.store.FinalizeAttempt(ctx, attempt, result, band, newProfile); err != nil {
		return nil, err
	}

	if topics := weakOperations(attempt.Questions); topics != nil {
		if err := s.store.SetAdaptiveTopics(studentID, topics); err != nil {
			log.Printf("WARN: failed to update adaptive topics for user %d: %v", studentID, err)
		}
	}

	points, err := s.rewards.AwardQuizPoints(studentID, attempt.ID, attempt.Questions)
	if err != nil {
		log.Printf("WARN: failed to award points for attempt %d: %v", attempt.ID, err)
	}

	return &models.SubmitQuizResponse{
		Success:            true,
		Score:              result.Score,
		Correct:            result.CorrectCount,
		Total:              result.Total,
		ResultBand:         band,
		NewProfile:         newProfile,
		OperationBreakdown: result.Breakdown,
		PointsAwarded:      points,
		Questions:          attempt.Questions,
	}, nil
}

// weakOperations lists operations where the student got less than half of
// the questions right, for adaptive practice targeting. Returns nil when
// nothing stands out.
func weakOperations(questions []models.AttemptQuestion) []string {
	totals := make(map[string]int)
	correct := make(map[string]int)
	for _, q := range questions {
		op := NormalizeOperation(q.Operation)
		totals[op]++
		if q.IsCorrect {
			correct[op]++
		}
	}

	var weak []string
	for _, op := range []string{"add", "sub", "mul", "div", OperationOther} {
		total := totals[op]
		if total >= 2 && correct[op]*2 < total {
			weak = append(weak, op)
		}
	}
	return weak
}

func (s *Service) GetProfile(studentID int64) (*models.LearnerProfile, error) {
	return s.store.GetOrCreateProfile(studentID, s.rewards.DailyAttemptLimit())
}

func (s *Service) ListAttempts(studentID int64, page, pageSize int) (*models.AttemptListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 50 {
		pageSize = 50
	}

	attempts, total, err := s.store.ListAttempts(studentID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}
	return &models.AttemptListResponse{
		Attempts: attempts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) GetAttempt(studentID, attemptID int64) (*models.QuizAttempt, error) {
	attempt, err := s.store.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, ErrNotFound
	}
	return attempt, nil
}

// ── Content Administration ──────────────────────────────

func (s *Service) CreateQuestion(schoolID *int64, req models.CreateQuestionRequest) (*models.Question, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	if len(req.Choices) < 2 {
		return nil, fmt.Errorf("at least 2 choices are required")
	}
	if req.CorrectIndex < 0 || req.CorrectIndex >= len(req.Choices) {
		return nil, fmt.Errorf("correct_index out of range")
	}
	if req.Difficulty < 1 || req.Difficulty > 10 {
		return nil, fmt.Errorf("difficulty must be between 1 and 10")
	}
	if req.Level <= 0 {
		req.Level = 1
	}
	return s.store.CreateQuestion(schoolID, req)
}

func (s *Service) ListQuestions(schoolID *int64, page, pageSize int) (*models.QuestionListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	questions, total, err := s.store.ListQuestions(schoolID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return &models.QuestionListResponse{
		Questions: questions,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

func (s *Service) SetQuestionActive(questionID int64, active bool) error {
	return s.store.SetQuestionActive(questionID, active)
}
