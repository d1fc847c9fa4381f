package quiz

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/play2learn/backend/internal/models"
)

// fakeStore is an in-memory attemptStore for orchestration tests.
type fakeStore struct {
	pool         []models.Question
	profile      models.LearnerProfile
	hasPlacement bool
	denyConsume  bool
	createErr    error
	attempt      *models.QuizAttempt

	consumed  int
	restored  int
	finalized bool
	topics    []string
	nextID    int64
}

func (f *fakeStore) GetActiveQuestions(schoolID *int64, minDiff, maxDiff int) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.pool {
		if q.Difficulty >= minDiff && q.Difficulty <= maxDiff {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateQuestion(schoolID *int64, req models.CreateQuestionRequest) (*models.Question, error) {
	return &models.Question{Prompt: req.Prompt}, nil
}

func (f *fakeStore) ListQuestions(schoolID *int64, page, pageSize int) ([]models.Question, int, error) {
	return f.pool, len(f.pool), nil
}

func (f *fakeStore) SetQuestionActive(questionID int64, active bool) error { return nil }

func (f *fakeStore) HasPlacementAttempt(studentID int64) (bool, error) {
	return f.hasPlacement, nil
}

func (f *fakeStore) CreateAttempt(ctx context.Context, studentID int64, schoolID *int64, quizType models.QuizType, selected []models.Question) (*models.QuizAttempt, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	attempt := &models.QuizAttempt{
		ID:             f.nextID,
		StudentID:      studentID,
		QuizType:       quizType,
		Status:         models.AttemptInProgress,
		TotalQuestions: len(selected),
	}
	for i, q := range selected {
		attempt.Questions = append(attempt.Questions, models.AttemptQuestion{
			AttemptID:    attempt.ID,
			Position:     i,
			QuestionID:   q.ID,
			Prompt:       q.Prompt,
			Choices:      q.Choices,
			CorrectIndex: q.CorrectIndex,
			Difficulty:   q.Difficulty,
			Operation:    NormalizeOperation(q.Operation),
		})
	}
	f.attempt = attempt
	return attempt, nil
}

func (f *fakeStore) GetAttempt(attemptID int64) (*models.QuizAttempt, error) {
	if f.attempt == nil || f.attempt.ID != attemptID {
		return nil, ErrNotFound
	}
	return f.attempt, nil
}

func (f *fakeStore) FinalizeAttempt(ctx context.Context, attempt *models.QuizAttempt, result GradeResult, band string, newProfile int) error {
	if attempt.Status != models.AttemptInProgress {
		return ErrAlreadyGraded
	}
	attempt.Status = models.AttemptGraded
	f.finalized = true
	return nil
}

func (f *fakeStore) ListAttempts(studentID int64, page, pageSize int) ([]models.QuizAttempt, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) GetOrCreateProfile(userID int64, defaultAttempts int) (*models.LearnerProfile, error) {
	p := f.profile
	p.UserID = userID
	return &p, nil
}

func (f *fakeStore) ConsumeDailyAttempt(userID int64) (bool, error) {
	if f.denyConsume {
		return false, nil
	}
	f.consumed++
	return true, nil
}

func (f *fakeStore) RestoreDailyAttempt(userID int64) error {
	f.restored++
	return nil
}

func (f *fakeStore) SetAdaptiveTopics(userID int64, topics []string) error {
	f.topics = topics
	return nil
}

type fakeRewards struct {
	points int
}

func (f *fakeRewards) DailyAttemptLimit() int { return 3 }

func (f *fakeRewards) AwardQuizPoints(userID, attemptID int64, questions []models.AttemptQuestion) (int, error) {
	return f.points, nil
}

func testPool(perDifficulty int) []models.Question {
	var pool []models.Question
	id := int64(0)
	for d := 1; d <= 10; d++ {
		for i := 0; i < perDifficulty; i++ {
			id++
			pool = append(pool, models.Question{
				ID:           id,
				Prompt:       "2 + 2 = ?",
				Choices:      []string{"3", "4", "5", "6"},
				CorrectIndex: 1,
				Difficulty:   d,
				Operation:    "add",
			})
		}
	}
	return pool
}

func newTestService(store *fakeStore) *Service {
	return &Service{store: store, rewards: &fakeRewards{points: 10}}
}

func TestStartQuizEmptyPoolKeepsDailyAttempt(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.StartQuiz(context.Background(), 1, nil, models.StartQuizRequest{QuizType: models.QuizRegular})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("StartQuiz error = %v, want ErrInsufficientData", err)
	}
	if store.consumed != 0 {
		t.Errorf("consumed %d daily attempts on an empty pool, want 0", store.consumed)
	}
}

func TestStartQuizCreateFailureRestoresDailyAttempt(t *testing.T) {
	store := &fakeStore{pool: testPool(3), createErr: errors.New("insert failed")}
	svc := newTestService(store)

	_, err := svc.StartQuiz(context.Background(), 1, nil, models.StartQuizRequest{QuizType: models.QuizRegular})
	if err == nil {
		t.Fatal("StartQuiz succeeded despite attempt insert failure")
	}
	if store.consumed != 1 || store.restored != 1 {
		t.Errorf("consumed=%d restored=%d, want the burned attempt given back", store.consumed, store.restored)
	}
}

func TestStartQuizPlacementConflict(t *testing.T) {
	store := &fakeStore{pool: testPool(3), hasPlacement: true}
	svc := newTestService(store)

	_, err := svc.StartQuiz(context.Background(), 1, nil, models.StartQuizRequest{QuizType: models.QuizPlacement})
	if !errors.Is(err, ErrPlacementExists) {
		t.Fatalf("StartQuiz error = %v, want ErrPlacementExists", err)
	}
	if store.consumed != 0 {
		t.Errorf("consumed %d daily attempts on a placement conflict, want 0", store.consumed)
	}
}

func TestStartQuizDailyLimit(t *testing.T) {
	store := &fakeStore{pool: testPool(3), denyConsume: true}
	svc := newTestService(store)

	_, err := svc.StartQuiz(context.Background(), 1, nil, models.StartQuizRequest{QuizType: models.QuizRegular})
	if !errors.Is(err, ErrAttemptLimit) {
		t.Fatalf("StartQuiz error = %v, want ErrAttemptLimit", err)
	}
	if store.attempt != nil {
		t.Error("an attempt was created despite the daily limit")
	}
}

func TestStartQuizSanitizesQuestions(t *testing.T) {
	store := &fakeStore{pool: testPool(3)}
	svc := newTestService(store)

	resp, err := svc.StartQuiz(context.Background(), 1, nil, models.StartQuizRequest{QuizType: models.QuizRegular, Count: 10})
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}
	if resp.Total != 10 || len(resp.Questions) != 10 {
		t.Fatalf("got %d questions, want 10", len(resp.Questions))
	}
	for i, q := range resp.Questions {
		if q.Prompt == "" || len(q.Choices) == 0 {
			t.Errorf("question %d missing prompt or choices", i)
		}
	}
	if store.consumed != 1 {
		t.Errorf("consumed = %d, want 1", store.consumed)
	}
}

func TestSubmitQuizRejectsForeignAttempt(t *testing.T) {
	store := &fakeStore{pool: testPool(3)}
	svc := newTestService(store)

	resp, err := svc.StartQuiz(context.Background(), 1, nil, models.StartQuizRequest{QuizType: models.QuizRegular})
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}

	_, err = svc.SubmitQuiz(context.Background(), 2, models.SubmitQuizRequest{AttemptID: resp.AttemptID})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SubmitQuiz by another student error = %v, want ErrNotFound", err)
	}
	if store.finalized {
		t.Error("attempt was finalized by a student who does not own it")
	}
}

func TestSubmitQuizGradesAndFinalizes(t *testing.T) {
	store := &fakeStore{pool: testPool(3)}
	svc := newTestService(store)

	start, err := svc.StartQuiz(context.Background(), 1, nil, models.StartQuizRequest{QuizType: models.QuizRegular, Count: 4})
	if err != nil {
		t.Fatalf("StartQuiz returned error: %v", err)
	}

	// Correct index is always 1 in the test pool.
	answers := []*int{intp(1), intp(1), intp(0), nil}
	resp, err := svc.SubmitQuiz(context.Background(), 1, models.SubmitQuizRequest{AttemptID: start.AttemptID, Answers: answers})
	if err != nil {
		t.Fatalf("SubmitQuiz returned error: %v", err)
	}

	if resp.Correct != 2 || resp.Total != 4 || resp.Score != 50 {
		t.Errorf("graded %d/%d score %d, want 2/4 score 50", resp.Correct, resp.Total, resp.Score)
	}
	if !store.finalized {
		t.Error("attempt was not finalized")
	}
	if resp.PointsAwarded != 10 {
		t.Errorf("points awarded = %d, want 10", resp.PointsAwarded)
	}

	// A second submit must hit the already-graded guard.
	_, err = svc.SubmitQuiz(context.Background(), 1, models.SubmitQuizRequest{AttemptID: start.AttemptID, Answers: answers})
	if !errors.Is(err, ErrAlreadyGraded) {
		t.Errorf("second submit error = %v, want ErrAlreadyGraded", err)
	}
}

func TestWeakOperations(t *testing.T) {
	questions := []models.AttemptQuestion{
		{Operation: "add", IsCorrect: true},
		{Operation: "add", IsCorrect: true},
		{Operation: "sub", IsCorrect: false},
		{Operation: "sub", IsCorrect: false},
		{Operation: "sub", IsCorrect: true},
		{Operation: "div", IsCorrect: false},
	}

	// sub is 1/3 correct → weak; div has only one question → ignored.
	got := weakOperations(questions)
	want := []string{"sub"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("weakOperations = %v, want %v", got, want)
	}
}

func TestWeakOperationsNoneWeak(t *testing.T) {
	questions := []models.AttemptQuestion{
		{Operation: "add", IsCorrect: true},
		{Operation: "add", IsCorrect: true},
		{Operation: "mul", IsCorrect: true},
		{Operation: "mul", IsCorrect: false},
	}
	if got := weakOperations(questions); got != nil {
		t.Errorf("weakOperations = %v, want nil", got)
	}
}
