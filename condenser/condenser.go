// Package condenser merges raw topics into the growing set of canonical
// condensed topics by embedding similarity. The clustering is online and
// order-sensitive: a topic that starts a new cluster becomes a match target
// for every later topic in the same run, so callers must process topics in a
// fixed order (the repositories return them by ascending logID).
package condenser

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/t3rryhuang/Sentiment-Insight/embed"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/models"
)

// TopicStore is the storage surface the condenser reads and grows.
// *repositories.CondensedTopicRepository satisfies it.
type TopicStore interface {
	ListAll(ctx context.Context) ([]models.CondensedTopic, error)
	Create(ctx context.Context, text, category string) (*models.CondensedTopic, error)
}

type Condenser struct {
	embedder embed.Embedder
	topics   TopicStore
}

func NewCondenser(embedder embed.Embedder, topics TopicStore) *Condenser {
	return &Condenser{embedder: embedder, topics: topics}
}

// BuildIndex reads every existing condensed topic and embeds it into a fresh
// cluster index. Called once per run; the index is rebuilt from storage every
// time rather than cached.
func (c *Condenser) BuildIndex(ctx context.Context) (*ClusterIndex, error) {
	existing, err := c.topics.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing condensed topics: %w", err)
	}

	ix := NewClusterIndex()
	if len(existing) == 0 {
		return ix, nil
	}

	texts := make([]string, len(existing))
	for i, ct := range existing {
		texts[i] = ct.CondensedTopic
	}
	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding condensed topics: %w", err)
	}
	for i, ct := range existing {
		ix.Add(ct.CondensedTopicID, vectors[i])
	}

	logger.InfoWithFields("cluster index built", logger.Fields{"clusters": ix.Len()})
	return ix, nil
}

// Condense resolves one raw topic to a condensed topic id. A best score at or
// above the threshold merges into that cluster; otherwise a new CondensedTopic
// row is created with the topic's text and category, appended to the index
// immediately, and reported with created = true.
func (c *Condenser) Condense(ctx context.Context, ix *ClusterIndex, topicText, category string) (uint, bool, error) {
	vec, err := c.embedder.Embed(ctx, topicText)
	if err != nil {
		return 0, false, fmt.Errorf("embedding topic %q: %w", topicText, err)
	}

	if id, ok := ix.Match(vec); ok {
		return id, false, nil
	}

	ct, err := c.topics.Create(ctx, topicText, category)
	if err != nil {
		return 0, false, fmt.Errorf("creating condensed topic %q: %w", topicText, err)
	}
	ix.Add(ct.CondensedTopicID, vec)

	logger.InfoWithFields("created condensed topic", logger.Fields{
		"condensed_topic_id": ct.CondensedTopicID,
		"topic":              topicText,
		"category":           category,
	})
	return ct.CondensedTopicID, true, nil
}

// TitleCase normalizes a raw topic the way the condensation run stores it:
// first letter of each word upper, rest lower.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
