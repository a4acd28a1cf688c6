package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/t3rryhuang/Sentiment-Insight/extractor"
)

func TestParseTopicList(t *testing.T) {
	got := extractor.ParseTopicList("Job Security, Corporate Culture , Cost-Cutting")
	assert.Equal(t, []string{"Job Security", "Corporate Culture", "Cost-Cutting"}, got)
}

func TestParseTopicListStripsThinkBlocks(t *testing.T) {
	raw := "<think>the text is mostly about\nlayoffs and morale</think>Layoffs, Employee Morale"
	got := extractor.ParseTopicList(raw)
	assert.Equal(t, []string{"Layoffs", "Employee Morale"}, got)
}

func TestParseTopicListDropsEmptyEntries(t *testing.T) {
	got := extractor.ParseTopicList("Layoffs,, ,Morale,")
	assert.Equal(t, []string{"Layoffs", "Morale"}, got)
}

func TestParseTopicListEmpty(t *testing.T) {
	assert.Empty(t, extractor.ParseTopicList("<think>nothing useful</think>"))
}
