package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t3rryhuang/Sentiment-Insight/aggregate"
	"github.com/t3rryhuang/Sentiment-Insight/condenser"
	"github.com/t3rryhuang/Sentiment-Insight/embed"
	"github.com/t3rryhuang/Sentiment-Insight/models"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
	"github.com/t3rryhuang/Sentiment-Insight/services"
)

type fixedEmbedder struct {
	vectors map[string]embed.Vector
}

func (e *fixedEmbedder) Embed(ctx context.Context, text string) (embed.Vector, error) {
	v, ok := e.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func (e *fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]embed.Vector, error) {
	out := make([]embed.Vector, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type memTopicStore struct {
	topics []models.CondensedTopic
}

func (s *memTopicStore) ListAll(ctx context.Context) ([]models.CondensedTopic, error) {
	return append([]models.CondensedTopic(nil), s.topics...), nil
}

func (s *memTopicStore) Create(ctx context.Context, text, category string) (*models.CondensedTopic, error) {
	ct := models.CondensedTopic{
		CondensedTopicID: uint(len(s.topics) + 1),
		CondensedTopic:   text,
		Category:         category,
	}
	s.topics = append(s.topics, ct)
	return &ct, nil
}

func (s *memTopicStore) GetByID(ctx context.Context, id uint) (*models.CondensedTopic, error) {
	for _, ct := range s.topics {
		if ct.CondensedTopicID == id {
			out := ct
			return &out, nil
		}
	}
	return nil, fmt.Errorf("condensed topic %d not found", id)
}

type memMentionSource struct {
	mentions []repositories.TopicMention
}

func (s *memMentionSource) ListForEntityAndDate(ctx context.Context, setID uint, date time.Time) ([]repositories.TopicMention, error) {
	return s.mentions, nil
}

type memCondensedLogStore struct {
	rows []models.MetricLogCondensed
}

func (s *memCondensedLogStore) CountForEntityAndDate(ctx context.Context, setID uint, date time.Time) (int64, error) {
	var n int64
	for _, r := range s.rows {
		if r.SetID == setID && r.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			n++
		}
	}
	return n, nil
}

func (s *memCondensedLogStore) BatchInsert(ctx context.Context, rows []models.MetricLogCondensed) error {
	s.rows = append(s.rows, rows...)
	return nil
}

func newCondenseFixture(mentions []repositories.TopicMention) (*services.CondenseService, *memTopicStore, *memCondensedLogStore) {
	embedder := &fixedEmbedder{vectors: map[string]embed.Vector{
		"Layoffs":      {1, 0},
		"Job Cuts":     {0.96, 0.28},
		"Data Centers": {0, 1},
	}}
	topics := &memTopicStore{}
	logs := &memCondensedLogStore{}
	svc := services.NewCondenseService(
		condenser.NewCondenser(embedder, topics),
		condenser.NewCategoryResolver(embedder, []string{"Business", "Technology"}),
		topics,
		&memMentionSource{mentions: mentions},
		logs,
		aggregate.MeanLiteral,
	)
	return svc, topics, logs
}

func TestCondenseRunMergesSimilarTopics(t *testing.T) {
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	mentions := []repositories.TopicMention{
		{LogID: 1, Topic: "layoffs", Category: "Business", AdjectiveID: 7, Impressions: 1, Severity: -1, Explanation: "e1"},
		{LogID: 2, Topic: "job cuts", Category: "Business", AdjectiveID: 7, Impressions: 1, Severity: 5, Explanation: "e2"},
		{LogID: 3, Topic: "data centers", Category: "Technology", AdjectiveID: 7, Impressions: 1, Severity: -1, Explanation: "e3"},
	}
	svc, topics, logs := newCondenseFixture(mentions)

	n, err := svc.Run(context.Background(), 42, date)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// "job cuts" merges into the cluster "layoffs" opened earlier in the run
	require.Len(t, topics.topics, 2)
	assert.Equal(t, "Layoffs", topics.topics[0].CondensedTopic)
	assert.Equal(t, "Data Centers", topics.topics[1].CondensedTopic)

	require.Len(t, logs.rows, 2)
	first := logs.rows[0]
	assert.Equal(t, uint(42), first.SetID)
	assert.Equal(t, uint(1), first.CondensedTopicID)
	assert.Equal(t, 2, first.Impressions)
	assert.Equal(t, 2, first.Severity) // round((-1+5)/2)
	assert.Equal(t, "Category: Business | e1 | e2", first.Explanation)
	assert.Equal(t, uint(2), logs.rows[1].CondensedTopicID)
}

func TestCondenseRunTwiceInsertsNothing(t *testing.T) {
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	mentions := []repositories.TopicMention{
		{LogID: 1, Topic: "layoffs", Category: "Business", AdjectiveID: 7, Impressions: 1, Severity: 5, Explanation: "e1"},
	}
	svc, topics, logs := newCondenseFixture(mentions)

	_, err := svc.Run(context.Background(), 42, date)
	require.NoError(t, err)
	require.Len(t, logs.rows, 1)

	n, err := svc.Run(context.Background(), 42, date)
	assert.ErrorIs(t, err, services.ErrAlreadyCondensed)
	assert.Zero(t, n)
	assert.Len(t, logs.rows, 1)
	assert.Len(t, topics.topics, 1)
}

func TestCondenseRunOtherDateUnaffectedByGuard(t *testing.T) {
	mentions := []repositories.TopicMention{
		{LogID: 1, Topic: "layoffs", Category: "Business", AdjectiveID: 7, Impressions: 1, Severity: 5, Explanation: "e1"},
	}
	svc, _, logs := newCondenseFixture(mentions)

	_, err := svc.Run(context.Background(), 42, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), 42, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, logs.rows, 2)
}
