package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/play2learn/backend/internal/quiz"
	"github.com/play2learn/backend/internal/rewards"
)

// Start launches the daily reset job: at midnight UTC every learner gets
// their quiz attempts topped back up to the configured limit.
func Start(quizStore *quiz.Store, rewardsService *rewards.Service) *cron.Cron {
	c := cron.New(cron.WithLocation(time.UTC))

	c.AddFunc("0 0 * * *", func() {
		limit := rewardsService.DailyAttemptLimit()
		reset, err := quizStore.ResetDailyAttempts(limit)
		if err != nil {
			log.Printf("[scheduler] daily attempt reset failed: %v", err)
			return
		}
		log.Printf("[scheduler] reset daily attempts for %d learners (limit %d)", reset, limit)
	})

	c.Start()
	log.Println("[scheduler] daily attempt reset scheduled at midnight UTC")
	return c
}
