package utils

import (
	"math"

	"github.com/hbollon/go-edlib"
)

// Similarity returns the Sørensen-Dice coefficient of the character bigrams
// of a and b, in [0, 1]. Empty inputs never match.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	score := float64(edlib.SorensenDiceCoefficient(a, b, 2))
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return math.Min(score, 1)
}

// BestMatch returns the highest Similarity of s against any of targets.
func BestMatch(s string, targets []string) float64 {
	best := 0.0
	for _, t := range targets {
		if score := Similarity(s, t); score > best {
			best = score
		}
	}
	return best
}
