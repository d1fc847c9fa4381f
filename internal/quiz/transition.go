package quiz

import (
	"math"

	"github.com/play2learn/backend/internal/models"
)

// Profile bounds for the placement (trial) track and level bounds for the
// main adaptive track. The two tracks use deliberately separate rule tables;
// do not unify them.
const (
	MinProfile = 1
	MaxProfile = 5
	MinLevel   = 0
	MaxLevel   = 20
)

// SimpleThreshold is the placement-track policy: promote on 70+, demote
// below 50, clamp to [1, 5].
func SimpleThreshold(profile, score int) int {
	switch {
	case score >= 70:
		profile++
	case score < 50:
		profile--
	}
	return clamp(profile, MinProfile, MaxProfile)
}

// WeightedPromotion is the main-track policy. Each question contributes its
// difficulty to the denominator and, when answered correctly, the same value
// to the numerator; the resulting percentage plus the average difficulty of
// correct answers drive the promotion table. Clamped to [0, 20].
func WeightedPromotion(level int, questions []models.AttemptQuestion) int {
	scorePct, avgDifficulty := weightedOutcome(questions)

	var delta int
	switch {
	case scorePct >= 100:
		switch {
		case avgDifficulty >= 8:
			delta = 3
		case avgDifficulty >= 6:
			delta = 2
		default:
			delta = 1
		}
	case scorePct >= 80:
		if avgDifficulty >= 7 {
			delta = 2
		} else {
			delta = 1
		}
	case scorePct >= 60:
		if avgDifficulty >= 6 {
			delta = 1
		}
	default:
		delta = -1
	}

	return clamp(level+delta, MinLevel, MaxLevel)
}

// weightedOutcome returns the difficulty-weighted score percentage and the
// average difficulty of correctly answered questions. An empty attempt
// yields (0, 0) rather than dividing by zero.
func weightedOutcome(questions []models.AttemptQuestion) (int, float64) {
	totalPoints := 0
	correctPoints := 0
	correctCount := 0

	for _, q := range questions {
		totalPoints += q.Difficulty
		if q.IsCorrect {
			correctPoints += q.Difficulty
			correctCount++
		}
	}

	if totalPoints == 0 {
		return 0, 0
	}

	scorePct := int(math.Round(100 * float64(correctPoints) / float64(totalPoints)))

	avgDifficulty := 0.0
	if correctCount > 0 {
		avgDifficulty = float64(correctPoints) / float64(correctCount)
	}
	return scorePct, avgDifficulty
}

// DifficultyWindow maps a main-track level onto the question difficulty
// range served to that learner.
func DifficultyWindow(level int) (int, int) {
	center := 1 + level*9/MaxLevel
	return clamp(center-2, 1, 10), clamp(center+2, 1, 10)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
