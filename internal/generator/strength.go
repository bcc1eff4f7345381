package generator

import "strings"

const (
	MaxScore = 5

	// StrongLength is the length at which a password earns the length bonus.
	StrongLength = 12
)

// Estimate scores a configuration from 0 to MaxScore: one point per enabled
// class and one for a length of at least StrongLength. It is a coarse
// heuristic, not an entropy estimate.
func Estimate(length int, c Classes) int {
	score := c.Count()
	if length >= StrongLength {
		score++
	}
	return min(score, MaxScore)
}

// Label returns a display word for a score.
func Label(score int) string {
	switch {
	case score >= MaxScore:
		return "strong"
	case score == 4:
		return "good"
	case score >= 2:
		return "fair"
	default:
		return "weak"
	}
}

// Bar renders a score as a five-stripe meter.
func Bar(score int) string {
	score = max(0, min(score, MaxScore))
	return strings.Repeat("■", score) + strings.Repeat("□", MaxScore-score)
}
