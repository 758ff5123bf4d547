package feedback

import (
	"strings"
)

var positiveKeywords = []string{
	"great", "good", "excellent", "helpful", "love", "smooth",
	"easy", "clear", "amazing", "supportive", "welcoming", "organized",
}

var negativeKeywords = []string{
	"bad", "poor", "confusing", "slow", "frustrating", "difficult",
	"unclear", "overwhelming", "problem", "stressful", "broken", "lost",
}

// Analyze scores a message with a keyword heuristic: start at 50, add 5
// per positive keyword hit, subtract 5 per negative hit, clamp to 0..100.
// Above 65 is positive, below 35 negative.
func Analyze(message string) (sentiment string, score int) {
	lower := strings.ToLower(message)

	score = 50
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			score += 5
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			score -= 5
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	switch {
	case score > 65:
		sentiment = SentimentPositive
	case score < 35:
		sentiment = SentimentNegative
	default:
		sentiment = SentimentNeutral
	}
	return sentiment, score
}
