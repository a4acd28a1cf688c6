// Package matcher merges freshly extracted topic candidates into the existing
// topic vocabulary by lexical similarity.
package matcher

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// matchThreshold is the 0..100 partial-ratio score a candidate must exceed to
// be folded into an existing topic.
const matchThreshold = 80

// Resolve returns the vocabulary entry the candidate merges into, or the
// candidate itself when nothing is close enough. The policy is greedy
// first-match in vocabulary iteration order, not best-match: the first topic
// above the threshold wins.
func Resolve(candidate string, vocabulary []string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", false
	}

	lower := strings.ToLower(candidate)
	for _, existing := range vocabulary {
		if fuzzy.PartialRatio(lower, strings.ToLower(existing)) > matchThreshold {
			return existing, true
		}
	}
	return candidate, false
}
