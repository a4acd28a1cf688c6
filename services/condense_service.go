package services

import (
	"context"
	"fmt"
	"time"

	"github.com/t3rryhuang/Sentiment-Insight/aggregate"
	"github.com/t3rryhuang/Sentiment-Insight/condenser"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/models"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
)

// ErrAlreadyCondensed reports that the (setID, date) key was condensed by an
// earlier run. Callers treat it as a clean no-op.
var ErrAlreadyCondensed = fmt.Errorf("metric logs already condensed for this entity and date")

// CondensedTopicReader looks up a condensed topic's text for category
// resolution. *repositories.CondensedTopicRepository satisfies it.
type CondensedTopicReader interface {
	GetByID(ctx context.Context, id uint) (*models.CondensedTopic, error)
}

// MentionSource lists one day's raw topic mentions for an entity.
// *repositories.MetricLogRepository satisfies it.
type MentionSource interface {
	ListForEntityAndDate(ctx context.Context, setID uint, date time.Time) ([]repositories.TopicMention, error)
}

// CondensedLogStore is the write side of a condensation run.
// *repositories.MetricLogCondensedRepository satisfies it.
type CondensedLogStore interface {
	CountForEntityAndDate(ctx context.Context, setID uint, date time.Time) (int64, error)
	BatchInsert(ctx context.Context, rows []models.MetricLogCondensed) error
}

// CondenseService folds one day of raw MetricLog rows for an entity into
// MetricLogCondensed summaries, merging topics into condensed topics by
// embedding similarity on the way.
type CondenseService struct {
	condenser       *condenser.Condenser
	resolver        *condenser.CategoryResolver
	condensedTopics CondensedTopicReader
	metricLogs      MentionSource
	condensedLogs   CondensedLogStore
	meanPolicy      aggregate.MeanPolicy
}

func NewCondenseService(
	cond *condenser.Condenser,
	resolver *condenser.CategoryResolver,
	condensedTopics CondensedTopicReader,
	metricLogs MentionSource,
	condensedLogs CondensedLogStore,
	meanPolicy aggregate.MeanPolicy,
) *CondenseService {
	return &CondenseService{
		condenser:       cond,
		resolver:        resolver,
		condensedTopics: condensedTopics,
		metricLogs:      metricLogs,
		condensedLogs:   condensedLogs,
		meanPolicy:      meanPolicy,
	}
}

func (s *CondenseService) Run(ctx context.Context, setID uint, date time.Time) (int, error) {
	count, err := s.condensedLogs.CountForEntityAndDate(ctx, setID, date)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.InfoWithFields("condensed rows already present, nothing to do", logger.Fields{
			"setID": setID,
			"date":  date.Format("2006-01-02"),
			"rows":  count,
		})
		return 0, ErrAlreadyCondensed
	}

	mentions, err := s.metricLogs.ListForEntityAndDate(ctx, setID, date)
	if err != nil {
		return 0, err
	}
	if len(mentions) == 0 {
		logger.InfoWithFields("no metric logs to condense", logger.Fields{
			"setID": setID,
			"date":  date.Format("2006-01-02"),
		})
		return 0, nil
	}

	ix, err := s.condenser.BuildIndex(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]aggregate.Record, 0, len(mentions))
	for _, m := range mentions {
		topicText := condenser.TitleCase(m.Topic)
		condensedID, _, err := s.condenser.Condense(ctx, ix, topicText, m.Category)
		if err != nil {
			return 0, fmt.Errorf("condensing topic %q: %w", topicText, err)
		}
		records = append(records, aggregate.Record{
			CondensedTopicID: condensedID,
			AdjectiveID:      m.AdjectiveID,
			Impressions:      m.Impressions,
			Severity:         m.Severity,
			Explanation:      m.Explanation,
			Category:         m.Category,
		})
	}

	summaries := aggregate.Fold(records, s.meanPolicy, s.resolveCategory(ctx))

	rows := make([]models.MetricLogCondensed, 0, len(summaries))
	for _, sum := range summaries {
		rows = append(rows, models.MetricLogCondensed{
			SetID:            setID,
			CondensedTopicID: sum.CondensedTopicID,
			AdjectiveID:      sum.AdjectiveID,
			Impressions:      sum.Impressions,
			Date:             date,
			Severity:         sum.Severity,
			Explanation:      sum.Explanation,
		})
	}
	if err := s.condensedLogs.BatchInsert(ctx, rows); err != nil {
		return 0, fmt.Errorf("inserting condensed rows: %w", err)
	}

	logger.InfoWithFields("condensation complete", logger.Fields{
		"setID":     setID,
		"date":      date.Format("2006-01-02"),
		"raw":       len(mentions),
		"condensed": len(rows),
	})
	return len(rows), nil
}

// resolveCategory adapts the embedding tie-breaker into the fold's resolver,
// looking up the condensed topic text by id.
func (s *CondenseService) resolveCategory(ctx context.Context) aggregate.CategoryResolverFunc {
	return func(condensedTopicID uint, categories []string) string {
		ct, err := s.condensedTopics.GetByID(ctx, condensedTopicID)
		if err != nil {
			logger.WarnWithFields("condensed topic lookup failed during category resolution", logger.Fields{
				"condensed_topic_id": condensedTopicID,
				"error":              err.Error(),
			})
			if len(categories) > 0 {
				return categories[0]
			}
			return "Miscellaneous"
		}
		return s.resolver.Resolve(ctx, ct.CondensedTopic, categories)
	}
}
