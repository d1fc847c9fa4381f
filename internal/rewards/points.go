package rewards

import "github.com/play2learn/backend/internal/models"

// DifficultyBonus returns extra points for a correct answer based on the
// question's difficulty (1-10).
func DifficultyBonus(difficulty int) int {
	if difficulty <= 3 {
		return 0
	}
	if difficulty <= 6 {
		return 2
	}
	if difficulty <= 8 {
		return 5
	}
	return 8
}

// QuizPoints computes the total award for a graded attempt: a flat rate per
// correct answer, a difficulty bonus per correct answer, and a bonus when
// every question was answered correctly.
func QuizPoints(settings *models.RewardSettings, questions []models.AttemptQuestion) int {
	if len(questions) == 0 {
		return 0
	}
	total := 0
	correct := 0
	for _, q := range questions {
		if !q.IsCorrect {
			continue
		}
		correct++
		total += settings.PointsPerCorrect + DifficultyBonus(q.Difficulty)
	}
	if correct == len(questions) {
		total += settings.PerfectBonus
	}
	return total
}
