package condenser

import (
	"context"
	"sort"

	"github.com/t3rryhuang/Sentiment-Insight/embed"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
)

// CategoryResolver picks the category for a condensed topic from the
// categories its member topics were classified into.
type CategoryResolver struct {
	embedder embed.Embedder
	priority []string
}

func NewCategoryResolver(embedder embed.Embedder, priority []string) *CategoryResolver {
	return &CategoryResolver{embedder: embedder, priority: priority}
}

// Resolve returns the most frequent category among the member topics. Ties
// are broken by embedding similarity between the condensed topic text and the
// tied category labels; if the embedder fails, the first tied label in
// configured priority order wins instead.
func (r *CategoryResolver) Resolve(ctx context.Context, condensedText string, categories []string) string {
	if len(categories) == 0 {
		return "Miscellaneous"
	}

	counts := make(map[string]int)
	max := 0
	for _, c := range categories {
		counts[c]++
		if counts[c] > max {
			max = counts[c]
		}
	}

	tied := make([]string, 0, len(counts))
	for c, n := range counts {
		if n == max {
			tied = append(tied, c)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	sort.Strings(tied)

	winner, err := r.embedTieBreak(ctx, condensedText, tied)
	if err != nil {
		logger.WarnWithFields("category tie-break fell back to priority order", logger.Fields{
			"topic": condensedText,
			"error": err.Error(),
		})
		return r.priorityPick(tied)
	}
	return winner
}

func (r *CategoryResolver) embedTieBreak(ctx context.Context, text string, tied []string) (string, error) {
	target, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return "", err
	}
	labelVecs, err := r.embedder.EmbedBatch(ctx, tied)
	if err != nil {
		return "", err
	}

	best := tied[0]
	bestScore := embed.CosineSimilarity(target, labelVecs[0])
	for i := 1; i < len(tied); i++ {
		if score := embed.CosineSimilarity(target, labelVecs[i]); score > bestScore {
			best = tied[i]
			bestScore = score
		}
	}
	return best, nil
}

func (r *CategoryResolver) priorityPick(tied []string) string {
	for _, p := range r.priority {
		for _, c := range tied {
			if c == p {
				return c
			}
		}
	}
	return tied[0]
}
