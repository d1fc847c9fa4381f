package testimonials

import "strings"

// Keyword-based sentiment scoring for submitted testimonials. The score
// blends word polarity with the author's star rating so a glowing 5-star
// review and a terse one still land in the right bucket.

var positiveWords = map[string]bool{
	"love": true, "loves": true, "loved": true, "great": true, "amazing": true,
	"excellent": true, "fantastic": true, "wonderful": true, "fun": true,
	"helpful": true, "easy": true, "enjoys": true, "enjoy": true, "best": true,
	"improved": true, "improvement": true, "progress": true, "happy": true,
	"engaging": true, "recommend": true, "awesome": true, "perfect": true,
}

var negativeWords = map[string]bool{
	"hate": true, "hates": true, "hated": true, "bad": true, "terrible": true,
	"awful": true, "boring": true, "confusing": true, "hard": true,
	"difficult": true, "frustrating": true, "frustrated": true, "worst": true,
	"broken": true, "slow": true, "buggy": true, "disappointed": true,
	"disappointing": true, "useless": true, "poor": true,
}

const (
	wordWeight   = 0.7
	ratingWeight = 0.3
)

// ScoreSentiment returns a score in [-1, 1] and a label of "positive",
// "neutral", or "negative". Rating is a 1-5 star value.
func ScoreSentiment(content string, rating int) (float64, string) {
	var pos, neg int
	for _, raw := range strings.Fields(strings.ToLower(content)) {
		word := strings.Trim(raw, ".,!?;:'\"()")
		if positiveWords[word] {
			pos++
		}
		if negativeWords[word] {
			neg++
		}
	}

	var wordScore float64
	if pos+neg > 0 {
		wordScore = float64(pos-neg) / float64(pos+neg)
	}

	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	ratingScore := float64(rating-3) / 2.0

	score := wordWeight*wordScore + ratingWeight*ratingScore

	label := "neutral"
	if score > 0.2 {
		label = "positive"
	} else if score < -0.2 {
		label = "negative"
	}
	return score, label
}
