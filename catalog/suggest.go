package catalog

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Suggest returns the candidate closest to name by edit distance, for
// use in not-found error messages. Returns "" when no candidate is
// close enough to be a plausible typo.
func Suggest(name string, candidates []string) string {
	limit := len(name)/2 + 1
	best := ""
	bestDistance := limit + 1
	for _, c := range candidates {
		d := levenshtein.DistanceForStrings(
			[]rune(strings.ToLower(name)),
			[]rune(strings.ToLower(c)),
			levenshtein.DefaultOptions,
		)
		if d < bestDistance {
			best = c
			bestDistance = d
		}
	}
	if bestDistance > limit {
		return ""
	}
	return best
}
