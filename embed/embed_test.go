package embed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/t3rryhuang/Sentiment-Insight/embed"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, embed.CosineSimilarity(embed.Vector{1, 2, 3}, embed.Vector{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, embed.CosineSimilarity(embed.Vector{1, 0}, embed.Vector{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, embed.CosineSimilarity(embed.Vector{1, 0}, embed.Vector{-1, 0}), 1e-9)
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	assert.Zero(t, embed.CosineSimilarity(embed.Vector{1, 2}, embed.Vector{1, 2, 3}))
	assert.Zero(t, embed.CosineSimilarity(nil, nil))
	assert.Zero(t, embed.CosineSimilarity(embed.Vector{0, 0}, embed.Vector{1, 1}))
}
