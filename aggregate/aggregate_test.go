package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/t3rryhuang/Sentiment-Insight/aggregate"
)

func firstCategory(condensedTopicID uint, categories []string) string {
	if len(categories) == 0 {
		return "Miscellaneous"
	}
	return categories[0]
}

func TestFoldGroupsByTopicAndAdjective(t *testing.T) {
	records := []aggregate.Record{
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: 4, Explanation: "a", Category: "Technology"},
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 2, Severity: 6, Explanation: "b", Category: "Technology"},
		{CondensedTopicID: 1, AdjectiveID: 11, Impressions: 1, Severity: 8, Explanation: "c", Category: "Technology"},
		{CondensedTopicID: 2, AdjectiveID: 10, Impressions: 3, Severity: 2, Explanation: "d", Category: "Environment"},
	}

	summaries := aggregate.Fold(records, aggregate.MeanLiteral, firstCategory)

	assert.Len(t, summaries, 3)

	// every input row lands in exactly one group; impression totals preserved
	totalIn, totalOut := 0, 0
	for _, r := range records {
		totalIn += r.Impressions
	}
	for _, s := range summaries {
		totalOut += s.Impressions
	}
	assert.Equal(t, totalIn, totalOut)

	// deterministic output order: (condensedTopicID, adjectiveID) ascending
	assert.Equal(t, uint(1), summaries[0].CondensedTopicID)
	assert.Equal(t, uint(10), summaries[0].AdjectiveID)
	assert.Equal(t, uint(1), summaries[1].CondensedTopicID)
	assert.Equal(t, uint(11), summaries[1].AdjectiveID)
	assert.Equal(t, uint(2), summaries[2].CondensedTopicID)

	assert.Equal(t, 3, summaries[0].Impressions)
	assert.Equal(t, 5, summaries[0].Severity) // mean of 4 and 6
	assert.Equal(t, "Category: Technology | a | b", summaries[0].Explanation)
}

func TestFoldLiteralMeanIncludesUnscored(t *testing.T) {
	records := []aggregate.Record{
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: -1, Category: "Technology"},
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: 7, Category: "Technology"},
	}

	summaries := aggregate.Fold(records, aggregate.MeanLiteral, firstCategory)
	assert.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Severity) // round((-1+7)/2)
}

func TestFoldScoredOnlyMeanExcludesUnscored(t *testing.T) {
	records := []aggregate.Record{
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: -1, Category: "Technology"},
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: 7, Category: "Technology"},
	}

	summaries := aggregate.Fold(records, aggregate.MeanScoredOnly, firstCategory)
	assert.Len(t, summaries, 1)
	assert.Equal(t, 7, summaries[0].Severity)
}

func TestFoldScoredOnlyAllUnscoredKeepsSentinel(t *testing.T) {
	records := []aggregate.Record{
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: -1, Category: "Technology"},
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 2, Severity: -1, Category: "Technology"},
	}

	summaries := aggregate.Fold(records, aggregate.MeanScoredOnly, firstCategory)
	assert.Len(t, summaries, 1)
	assert.Equal(t, -1, summaries[0].Severity)
}

func TestFoldResolverSeesGroupCategories(t *testing.T) {
	var seen []string
	resolve := func(condensedTopicID uint, categories []string) string {
		seen = append(seen, categories...)
		return "Resolved"
	}

	records := []aggregate.Record{
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: 5, Explanation: "x", Category: "A"},
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: 5, Explanation: "y", Category: "B"},
	}

	summaries := aggregate.Fold(records, aggregate.MeanLiteral, resolve)
	assert.ElementsMatch(t, []string{"A", "B"}, seen)
	assert.Equal(t, "Category: Resolved | x | y", summaries[0].Explanation)
	assert.Equal(t, "Resolved", summaries[0].Category)
}

func TestFoldKeepsEmptyExplanations(t *testing.T) {
	records := []aggregate.Record{
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: 5, Explanation: "", Category: "Technology"},
		{CondensedTopicID: 1, AdjectiveID: 10, Impressions: 1, Severity: 5, Explanation: "b", Category: "Technology"},
	}

	summaries := aggregate.Fold(records, aggregate.MeanLiteral, firstCategory)
	assert.Len(t, summaries, 1)
	// one segment per member row, even when an explanation is blank
	assert.Equal(t, "Category: Technology |  | b", summaries[0].Explanation)
}

func TestFoldEmptyInput(t *testing.T) {
	summaries := aggregate.Fold(nil, aggregate.MeanLiteral, firstCategory)
	assert.Empty(t, summaries)
}
