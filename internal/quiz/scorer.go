package quiz

import (
	"math"
	"strings"

	"github.com/play2learn/backend/internal/models"
)

// OperationOther is the fallback breakdown bucket for operations outside the
// closed add/sub/mul/div set.
const OperationOther = "other"

var canonicalOperations = map[string]string{
	"add":            "add",
	"addition":       "add",
	"plus":           "add",
	"sub":            "sub",
	"subtract":       "sub",
	"subtraction":    "sub",
	"minus":          "sub",
	"mul":            "mul",
	"multiply":       "mul",
	"multiplication": "mul",
	"times":          "mul",
	"div":            "div",
	"divide":         "div",
	"division":       "div",
}

// NormalizeOperation maps an authored operation name onto the closed
// breakdown key set, defaulting to the "other" bucket.
func NormalizeOperation(op string) string {
	if key, ok := canonicalOperations[strings.ToLower(strings.TrimSpace(op))]; ok {
		return key
	}
	return OperationOther
}

// GradeResult aggregates one graded attempt.
type GradeResult struct {
	Score        int
	CorrectCount int
	Total        int
	Breakdown    map[string]int
}

// GradeAnswers grades answers by position against the attempt's question
// snapshots, mutating each question's SelectedIndex and IsCorrect in place.
// A nil answer, -1, or any index outside the question's choice list counts
// as unanswered and is never correct. Answers beyond the question list are
// ignored; missing trailing answers are unanswered.
func GradeAnswers(questions []models.AttemptQuestion, answers []*int) GradeResult {
	result := GradeResult{
		Total:     len(questions),
		Breakdown: map[string]int{},
	}

	for i := range questions {
		q := &questions[i]

		var selected *int
		if i < len(answers) && answers[i] != nil {
			if v := *answers[i]; v >= 0 && v < len(q.Choices) {
				selected = &v
			}
		}
		q.SelectedIndex = selected
		q.IsCorrect = selected != nil && *selected == q.CorrectIndex

		if q.IsCorrect {
			result.CorrectCount++
			result.Breakdown[NormalizeOperation(q.Operation)]++
		}
	}

	if result.Total > 0 {
		result.Score = int(math.Round(100 * float64(result.CorrectCount) / float64(result.Total)))
	}
	return result
}

// ResultBand maps a score onto the coarse pass/fail label stored with the
// attempt.
func ResultBand(score int) string {
	if score >= 50 {
		return "pass"
	}
	return "fail"
}
