package testimonials

import "testing"

func TestScoreSentiment(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		rating    int
		wantLabel string
	}{
		{"glowing review", "My daughter loves the quizzes, great progress and so much fun!", 5, "positive"},
		{"negative review", "Confusing and frustrating, my son hated it.", 1, "negative"},
		{"no keywords neutral rating", "We have used it for two months.", 3, "neutral"},
		{"mixed words high rating", "A bit hard at first but the kids love it.", 5, "positive"},
		{"no keywords low rating", "We stopped using it after a week.", 1, "negative"},
	}
	for _, tt := range tests {
		score, label := ScoreSentiment(tt.content, tt.rating)
		if label != tt.wantLabel {
			t.Errorf("%s: label = %q (score %.2f), want %q", tt.name, label, score, tt.wantLabel)
		}
		if score < -1 || score > 1 {
			t.Errorf("%s: score %.2f out of [-1, 1]", tt.name, score)
		}
	}
}

func TestScoreSentimentPunctuation(t *testing.T) {
	// Keywords must match with trailing punctuation attached.
	score, label := ScoreSentiment("Amazing! Excellent!", 4)
	if label != "positive" {
		t.Errorf("label = %q (score %.2f), want positive", label, score)
	}
}

func TestScoreSentimentRatingClamp(t *testing.T) {
	outOfRange, _ := ScoreSentiment("", 99)
	atMax, _ := ScoreSentiment("", 5)
	if outOfRange != atMax {
		t.Errorf("rating 99 scored %.2f, want same as rating 5 (%.2f)", outOfRange, atMax)
	}
}
