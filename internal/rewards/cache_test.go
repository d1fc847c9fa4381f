package rewards

import (
	"testing"
	"time"

	"github.com/play2learn/backend/internal/models"
)

func TestSettingsCacheTTL(t *testing.T) {
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache := newSettingsCache()
	cache.now = func() time.Time { return current }

	if cache.get() != nil {
		t.Fatal("empty cache returned a value")
	}

	settings := &models.RewardSettings{PointsPerCorrect: 10, DailyAttemptLimit: 3}
	cache.set(settings)

	if got := cache.get(); got != settings {
		t.Errorf("cache.get() = %v, want stored settings", got)
	}

	current = current.Add(settingsTTL - time.Second)
	if cache.get() == nil {
		t.Error("cache expired before TTL elapsed")
	}

	current = current.Add(2 * time.Second)
	if cache.get() != nil {
		t.Error("cache still serving value after TTL")
	}
}

func TestSettingsCacheInvalidate(t *testing.T) {
	cache := newSettingsCache()
	cache.set(&models.RewardSettings{PointsPerCorrect: 10})
	cache.invalidate()

	if cache.get() != nil {
		t.Error("cache returned value after invalidate")
	}
}

func TestQuizPoints(t *testing.T) {
	settings := &models.RewardSettings{PointsPerCorrect: 10, PerfectBonus: 25}

	questions := []models.AttemptQuestion{
		{Difficulty: 2, IsCorrect: true},
		{Difficulty: 5, IsCorrect: true},
		{Difficulty: 9, IsCorrect: false},
	}
	// 10 + 0, 10 + 2, miss: no perfect bonus.
	if got := QuizPoints(settings, questions); got != 22 {
		t.Errorf("QuizPoints = %d, want 22", got)
	}

	questions[2].IsCorrect = true
	// 10+0, 10+2, 10+8, plus the perfect bonus.
	if got := QuizPoints(settings, questions); got != 65 {
		t.Errorf("QuizPoints (perfect) = %d, want 65", got)
	}

	if got := QuizPoints(settings, nil); got != 0 {
		t.Errorf("QuizPoints (empty) = %d, want 0", got)
	}
}
