package quiz

import (
	"testing"

	"github.com/play2learn/backend/internal/models"
)

func intp(v int) *int { return &v }

var fourChoices = []string{"12", "15", "18", "21"}

func TestGradeAnswersBasics(t *testing.T) {
	questions := []models.AttemptQuestion{
		{Choices: fourChoices, CorrectIndex: 0, Operation: "add"},
		{Choices: fourChoices, CorrectIndex: 1, Operation: "sub"},
		{Choices: fourChoices, CorrectIndex: 2, Operation: "mul"},
		{Choices: fourChoices, CorrectIndex: 3, Operation: "div"},
	}
	answers := []*int{intp(0), intp(2), intp(2), intp(0)}

	result := GradeAnswers(questions, answers)

	if result.CorrectCount != 2 {
		t.Errorf("CorrectCount = %d, want 2", result.CorrectCount)
	}
	if result.Score != 50 {
		t.Errorf("Score = %d, want 50", result.Score)
	}
	if !questions[0].IsCorrect || questions[1].IsCorrect || !questions[2].IsCorrect || questions[3].IsCorrect {
		t.Errorf("per-question correctness wrong: %+v", questions)
	}
	if result.Breakdown["add"] != 1 || result.Breakdown["mul"] != 1 {
		t.Errorf("Breakdown = %v, want add=1 mul=1", result.Breakdown)
	}
}

func TestGradeAnswersUnanswered(t *testing.T) {
	questions := []models.AttemptQuestion{
		{Choices: fourChoices, CorrectIndex: 0, Operation: "add"},
		{Choices: fourChoices, CorrectIndex: 0, Operation: "add"},
		{Choices: fourChoices, CorrectIndex: 0, Operation: "add"},
		{Choices: fourChoices, CorrectIndex: 0, Operation: "add"},
	}
	// nil, sentinel -1, an index past the choice list, and a missing
	// trailing answer: all unanswered, none throw.
	answers := []*int{nil, intp(-1), intp(len(fourChoices))}

	result := GradeAnswers(questions, answers)

	if result.CorrectCount != 0 {
		t.Errorf("CorrectCount = %d, want 0", result.CorrectCount)
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
	for i, q := range questions {
		if q.IsCorrect {
			t.Errorf("question %d graded correct despite no answer", i)
		}
		if q.SelectedIndex != nil {
			t.Errorf("question %d stored selected index %d for unanswered", i, *q.SelectedIndex)
		}
	}
}

func TestGradeAnswersScoreBounds(t *testing.T) {
	for _, n := range []int{1, 3, 7, 15, 40} {
		questions := make([]models.AttemptQuestion, n)
		answers := make([]*int, n)
		for i := range questions {
			questions[i] = models.AttemptQuestion{Choices: fourChoices, CorrectIndex: 0, Operation: "add"}
			if i%2 == 0 {
				answers[i] = intp(0)
			}
		}
		result := GradeAnswers(questions, answers)
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("n=%d: score %d out of [0,100]", n, result.Score)
		}
		if result.CorrectCount > result.Total {
			t.Errorf("n=%d: correct %d exceeds total %d", n, result.CorrectCount, result.Total)
		}
	}
}

func TestGradeAnswersEmpty(t *testing.T) {
	result := GradeAnswers(nil, nil)
	if result.Score != 0 || result.Total != 0 {
		t.Errorf("empty attempt: score=%d total=%d, want 0/0", result.Score, result.Total)
	}
}

func TestNormalizeOperation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"add", "add"},
		{"Addition", "add"},
		{"  MINUS ", "sub"},
		{"multiplication", "mul"},
		{"division", "div"},
		{"fractions", "other"},
		{"", "other"},
	}
	for _, tt := range tests {
		if got := NormalizeOperation(tt.in); got != tt.want {
			t.Errorf("NormalizeOperation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResultBand(t *testing.T) {
	if ResultBand(50) != "pass" {
		t.Errorf("ResultBand(50) = %q, want pass", ResultBand(50))
	}
	if ResultBand(49) != "fail" {
		t.Errorf("ResultBand(49) = %q, want fail", ResultBand(49))
	}
}
