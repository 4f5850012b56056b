package providers

import (
	"regexp"
	"strconv"
)

// DefaultScore is assumed when no score pattern matches the response text.
const DefaultScore = 75

// Score patterns, tried in order. Extraction is best-effort: providers are
// prompted to end with "Score: N/100" but not all comply.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:score|rating):\s*(\d{1,3})`),
	regexp.MustCompile(`(\d{1,3})\s*/\s*100`),
	regexp.MustCompile(`(?i)(?:give|assign)\s+(?:it\s+)?(?:a\s+)?(\d{1,3})`),
}

// ExtractScore pulls a 0-100 score out of free-form response text, returning
// DefaultScore when no pattern yields a value in range.
func ExtractScore(text string) int {
	for _, pattern := range scorePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		score, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if score >= 0 && score <= 100 {
			return score
		}
	}
	return DefaultScore
}
