package quiz

import (
	"math/rand"

	"github.com/play2learn/backend/internal/models"
)

// SelectQuestions draws up to n questions from the pool with maximal spread
// across difficulty buckets: each bucket contributes up to floor(n/buckets)
// questions, and any shortfall is backfilled by random sampling from the
// rest of the pool. The result is shuffled; callers must tolerate fewer than
// n questions when the pool is small.
func SelectQuestions(pool []models.Question, n int) ([]models.Question, error) {
	if len(pool) == 0 {
		return nil, ErrInsufficientData
	}
	if n <= 0 {
		return []models.Question{}, nil
	}

	// Pool smaller than the request: serve everything, shuffled.
	if len(pool) <= n {
		out := make([]models.Question, len(pool))
		copy(out, pool)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out, nil
	}

	buckets := make(map[int][]models.Question)
	for _, q := range pool {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], q)
	}

	perLevel := n / len(buckets)
	chosen := make(map[int64]bool)
	out := make([]models.Question, 0, n)

	for _, bucket := range buckets {
		rand.Shuffle(len(bucket), func(i, j int) { bucket[i], bucket[j] = bucket[j], bucket[i] })
		take := perLevel
		if take > len(bucket) {
			take = len(bucket)
		}
		for _, q := range bucket[:take] {
			chosen[q.ID] = true
			out = append(out, q)
		}
	}

	// Backfill shortfall from the remaining pool.
	if len(out) < n {
		var remaining []models.Question
		for _, q := range pool {
			if !chosen[q.ID] {
				remaining = append(remaining, q)
			}
		}
		rand.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })
		for _, q := range remaining {
			if len(out) >= n {
				break
			}
			chosen[q.ID] = true
			out = append(out, q)
		}
	}

	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}
