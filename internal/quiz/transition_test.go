package quiz

import (
	"testing"

	"github.com/play2learn/backend/internal/models"
)

func TestSimpleThreshold(t *testing.T) {
	tests := []struct {
		profile int
		score   int
		want    int
	}{
		{3, 75, 4},  // promote at 70+
		{3, 70, 4},  // boundary
		{3, 69, 3},  // hold
		{3, 50, 3},  // hold at lower boundary
		{3, 49, 2},  // demote below 50
		{1, 40, 1},  // clamped, never 0
		{5, 95, 5},  // clamped at top
	}
	for _, tt := range tests {
		if got := SimpleThreshold(tt.profile, tt.score); got != tt.want {
			t.Errorf("SimpleThreshold(%d, %d) = %d, want %d", tt.profile, tt.score, got, tt.want)
		}
	}
}

func gradedQuestions(difficulties []int, correct []bool) []models.AttemptQuestion {
	qs := make([]models.AttemptQuestion, len(difficulties))
	for i, d := range difficulties {
		qs[i] = models.AttemptQuestion{Difficulty: d, IsCorrect: correct[i]}
	}
	return qs
}

func allCorrect(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func TestWeightedPromotionPerfectHighDifficulty(t *testing.T) {
	// All 5 correct, difficulties avg 8.8: 100% weighted score, avg >= 8 → +3.
	qs := gradedQuestions([]int{8, 9, 10, 8, 9}, allCorrect(5))

	if got := WeightedPromotion(5, qs); got != 8 {
		t.Errorf("WeightedPromotion(5, perfect hard) = %d, want 8", got)
	}
}

func TestWeightedPromotionMidBand(t *testing.T) {
	// 11 of 15 correct at uniform difficulty 6: weighted score 73, avg
	// difficulty 6 → +1.
	difficulties := make([]int, 15)
	correct := make([]bool, 15)
	for i := range difficulties {
		difficulties[i] = 6
		correct[i] = i < 11
	}
	qs := gradedQuestions(difficulties, correct)

	if got := WeightedPromotion(5, qs); got != 6 {
		t.Errorf("WeightedPromotion(5, 11/15 at difficulty 6) = %d, want 6", got)
	}
}

func TestWeightedPromotionTable(t *testing.T) {
	tests := []struct {
		name         string
		level        int
		difficulties []int
		correct      []bool
		want         int
	}{
		{"perfect easy", 5, []int{2, 2, 2}, []bool{true, true, true}, 6},
		{"perfect medium", 5, []int{6, 6, 7}, []bool{true, true, true}, 7},
		{"80s band high difficulty", 5, []int{8, 8, 8, 8, 8}, []bool{true, true, true, true, false}, 7},
		{"60s band low difficulty", 5, []int{3, 3, 3, 3, 3}, []bool{true, true, true, false, false}, 5},
		{"fail band", 5, []int{5, 5, 5, 5}, []bool{true, false, false, false}, 4},
	}
	for _, tt := range tests {
		qs := gradedQuestions(tt.difficulties, tt.correct)
		if got := WeightedPromotion(tt.level, qs); got != tt.want {
			t.Errorf("%s: WeightedPromotion(%d) = %d, want %d", tt.name, tt.level, got, tt.want)
		}
	}
}

func TestWeightedPromotionClamps(t *testing.T) {
	// Demotion at level 0 stays at 0.
	qs := gradedQuestions([]int{5, 5, 5, 5}, []bool{false, false, false, false})
	if got := WeightedPromotion(0, qs); got != 0 {
		t.Errorf("WeightedPromotion(0, all wrong) = %d, want 0", got)
	}

	// Promotion near the cap clamps to 20.
	hard := gradedQuestions([]int{9, 9, 10}, allCorrect(3))
	if got := WeightedPromotion(19, hard); got != 20 {
		t.Errorf("WeightedPromotion(19, perfect hard) = %d, want 20", got)
	}
}

func TestWeightedPromotionEmptyAttempt(t *testing.T) {
	// Zero questions must not divide by zero; percentage 0 demotes.
	if got := WeightedPromotion(5, nil); got != 4 {
		t.Errorf("WeightedPromotion(5, empty) = %d, want 4", got)
	}
}

func TestDifficultyWindow(t *testing.T) {
	tests := []struct {
		level    int
		wantMin  int
		wantMax  int
	}{
		{0, 1, 3},
		{10, 3, 7},
		{20, 8, 10},
	}
	for _, tt := range tests {
		lo, hi := DifficultyWindow(tt.level)
		if lo != tt.wantMin || hi != tt.wantMax {
			t.Errorf("DifficultyWindow(%d) = (%d, %d), want (%d, %d)", tt.level, lo, hi, tt.wantMin, tt.wantMax)
		}
	}
}
