package rewards

import (
	"log"

	"github.com/play2learn/backend/internal/models"
)

type Service struct {
	store *Store
	cache *settingsCache

	// fallbackDailyLimit applies when the settings row can't be read.
	fallbackDailyLimit int
}

func NewService(store *Store, fallbackDailyLimit int) *Service {
	if fallbackDailyLimit < 1 {
		fallbackDailyLimit = 3
	}
	return &Service{store: store, cache: newSettingsCache(), fallbackDailyLimit: fallbackDailyLimit}
}

// Settings returns the platform reward settings, served from a short-lived
// in-process cache.
func (s *Service) Settings() (*models.RewardSettings, error) {
	if cached := s.cache.get(); cached != nil {
		return cached, nil
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, err
	}
	s.cache.set(settings)
	return settings, nil
}

func (s *Service) UpdateSettings(req models.UpdateRewardSettingsRequest) (*models.RewardSettings, error) {
	settings, err := s.store.UpdateSettings(req)
	if err != nil {
		return nil, err
	}
	s.cache.invalidate()
	return settings, nil
}

// DailyAttemptLimit reads the configured limit, falling back to the default
// when the settings row can't be fetched.
func (s *Service) DailyAttemptLimit() int {
	settings, err := s.Settings()
	if err != nil {
		log.Printf("WARN: failed to load reward settings, using default limit: %v", err)
		return s.fallbackDailyLimit
	}
	return settings.DailyAttemptLimit
}

// AwardQuizPoints computes and records the point award for a graded attempt.
func (s *Service) AwardQuizPoints(userID, attemptID int64, questions []models.AttemptQuestion) (int, error) {
	settings, err := s.Settings()
	if err != nil {
		return 0, err
	}
	points := QuizPoints(settings, questions)
	if points == 0 {
		return 0, nil
	}
	if err := s.store.InsertLedgerEntry(userID, points, "quiz", &attemptID); err != nil {
		return 0, err
	}
	return points, nil
}

func (s *Service) Balance(userID int64) (*models.RewardBalanceResponse, error) {
	total, err := s.store.TotalPoints(userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.store.RecentEntries(userID, 10)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.RewardLedgerEntry{}
	}
	return &models.RewardBalanceResponse{TotalPoints: total, Recent: recent}, nil
}
