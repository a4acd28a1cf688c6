// Package aggregate folds per-post metric logs into one row per
// (condensed topic, adjective) pair for a tracked entity and date.
package aggregate

import (
	"math"
	"sort"
	"strings"
)

// MeanPolicy controls how the severity mean treats unscored rows.
type MeanPolicy string

const (
	// MeanLiteral averages every severity value including the -1 sentinel.
	MeanLiteral MeanPolicy = "literal"
	// MeanScoredOnly averages only rows that have been scored; a group with
	// no scored rows keeps the -1 sentinel.
	MeanScoredOnly MeanPolicy = "scored-only"
)

// Record is one metric log after its topic has been condensed.
type Record struct {
	CondensedTopicID uint
	AdjectiveID      uint
	Impressions      int
	Severity         int
	Explanation      string
	Category         string
}

// Summary is one aggregated row, ready for insertion.
type Summary struct {
	CondensedTopicID uint
	AdjectiveID      uint
	Impressions      int
	Severity         int
	Explanation      string
	Category         string
}

// CategoryResolverFunc picks the category for one aggregation group from the
// categories of its member records. Called once per group.
type CategoryResolverFunc func(condensedTopicID uint, categories []string) string

type group struct {
	condensedTopicID uint
	adjectiveID      uint
	impressions      int
	severities       []int
	explanations     []string
	categories       []string
}

// Fold aggregates records by (condensed topic, adjective). Impressions are
// summed, severity is a rounded mean under the given policy, and explanations
// are joined with " | " behind a "Category: X" prefix. Output order is
// deterministic: ascending condensed topic id, then adjective id.
func Fold(records []Record, policy MeanPolicy, resolve CategoryResolverFunc) []Summary {
	type key struct {
		topicID     uint
		adjectiveID uint
	}

	groups := make(map[key]*group)
	for _, r := range records {
		k := key{r.CondensedTopicID, r.AdjectiveID}
		g, ok := groups[k]
		if !ok {
			g = &group{condensedTopicID: r.CondensedTopicID, adjectiveID: r.AdjectiveID}
			groups[k] = g
		}
		g.impressions += r.Impressions
		g.severities = append(g.severities, r.Severity)
		// Explanations are joined verbatim, empty ones included, so the
		// summary keeps one segment per member row.
		g.explanations = append(g.explanations, r.Explanation)
		g.categories = append(g.categories, r.Category)
	}

	summaries := make([]Summary, 0, len(groups))
	for _, g := range groups {
		category := resolve(g.condensedTopicID, g.categories)
		summaries = append(summaries, Summary{
			CondensedTopicID: g.condensedTopicID,
			AdjectiveID:      g.adjectiveID,
			Impressions:      g.impressions,
			Severity:         meanSeverity(g.severities, policy),
			Explanation:      joinExplanations(category, g.explanations),
			Category:         category,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CondensedTopicID != summaries[j].CondensedTopicID {
			return summaries[i].CondensedTopicID < summaries[j].CondensedTopicID
		}
		return summaries[i].AdjectiveID < summaries[j].AdjectiveID
	})
	return summaries
}

func meanSeverity(severities []int, policy MeanPolicy) int {
	values := severities
	if policy == MeanScoredOnly {
		values = values[:0:0]
		for _, s := range severities {
			if s >= 0 {
				values = append(values, s)
			}
		}
		if len(values) == 0 {
			return -1
		}
	}
	if len(values) == 0 {
		return -1
	}
	sum := 0
	for _, s := range values {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}

func joinExplanations(category string, explanations []string) string {
	parts := append([]string{"Category: " + category}, explanations...)
	return strings.Join(parts, " | ")
}
