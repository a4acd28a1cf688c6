package services

import (
	"context"
	"fmt"
	"time"

	"github.com/t3rryhuang/Sentiment-Insight/classifier"
	"github.com/t3rryhuang/Sentiment-Insight/config"
	"github.com/t3rryhuang/Sentiment-Insight/extractor"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/matcher"
	"github.com/t3rryhuang/Sentiment-Insight/models"
	"github.com/t3rryhuang/Sentiment-Insight/reddit"
	"github.com/t3rryhuang/Sentiment-Insight/relevance"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
	"github.com/t3rryhuang/Sentiment-Insight/textproc"
)

// categoryThreshold is the minimum zero-shot confidence for a real category;
// below it the topic lands in Miscellaneous.
const categoryThreshold = 0.3

// IngestService runs one collection pass for a tracked entity: search posts,
// extract topics, classify, and write raw MetricLog rows.
type IngestService struct {
	reddit     *reddit.Client
	extractor  extractor.TopicExtractor
	category   classifier.CategoryClassifier
	emotion    classifier.EmotionClassifier
	verifier   *relevance.Verifier
	entities   *repositories.TrackedEntityRepository
	topics     *repositories.TopicRepository
	adjectives *repositories.AdjectiveRepository
	metricLogs *repositories.MetricLogRepository
	cfg        config.AppConfig
}

func NewIngestService(
	redditClient *reddit.Client,
	topicExtractor extractor.TopicExtractor,
	category classifier.CategoryClassifier,
	emotion classifier.EmotionClassifier,
	verifier *relevance.Verifier,
	entities *repositories.TrackedEntityRepository,
	topics *repositories.TopicRepository,
	adjectives *repositories.AdjectiveRepository,
	metricLogs *repositories.MetricLogRepository,
	cfg config.AppConfig,
) *IngestService {
	return &IngestService{
		reddit:     redditClient,
		extractor:  topicExtractor,
		category:   category,
		emotion:    emotion,
		verifier:   verifier,
		entities:   entities,
		topics:     topics,
		adjectives: adjectives,
		metricLogs: metricLogs,
		cfg:        cfg,
	}
}

type IngestInput struct {
	EntityType string
	EntityName string
	// Date selects the 24h window [Date, Date+1d); zero means the trailing
	// 24 hours ending now.
	Date  time.Time
	Limit int
}

type IngestReport struct {
	SetID          uint
	PostsFetched   int
	PostsProcessed int
	RowsInserted   int
}

func (s *IngestService) Run(ctx context.Context, in IngestInput) (*IngestReport, error) {
	if in.EntityType == models.EntityTypeIndustry && !s.validIndustry(in.EntityName) {
		return nil, fmt.Errorf("unrecognized industry %q, valid: %v", in.EntityName, s.cfg.ValidIndustries)
	}

	start, end, recordDate := window(in.Date)
	limit := in.Limit
	if limit <= 0 {
		limit = s.cfg.PostFetchLimit
	}

	posts, err := s.reddit.SearchPosts(ctx, in.EntityType, in.EntityName, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	if len(posts) == 0 {
		logger.InfoWithFields("no posts found in window", logger.Fields{
			"entity": in.EntityName,
			"start":  start.Format(time.RFC3339),
		})
		return &IngestReport{}, nil
	}

	entity, err := s.entities.LookupOrCreate(ctx, in.EntityType, in.EntityName)
	if err != nil {
		return nil, err
	}

	vocabulary, err := s.topics.ListTexts(ctx)
	if err != nil {
		return nil, err
	}

	report := &IngestReport{SetID: entity.SetID, PostsFetched: len(posts)}
	var rows []models.MetricLog

	for _, post := range posts {
		headline := post.Title + " " + post.SelfText
		if textproc.IsSpam(headline) {
			logger.DebugWithFields("skipping spam post", logger.Fields{"title": post.Title})
			continue
		}
		if in.EntityType != models.EntityTypeSubreddit && in.EntityType != models.EntityTypeOrganisation {
			cleaned := textproc.Clean(textproc.ExpandSlang(headline))
			if !s.verifier.IsRelevant(cleaned, in.EntityName) {
				logger.DebugWithFields("skipping post, no meaningful mention", logger.Fields{
					"title":  post.Title,
					"entity": in.EntityName,
				})
				continue
			}
		}

		text, err := s.reddit.ThreadText(ctx, post)
		if err != nil {
			logger.WarnWithFields("fetching thread failed, skipping post", logger.Fields{
				"title": post.Title,
				"error": err.Error(),
			})
			continue
		}
		if text == "" {
			logger.DebugWithFields("skipping post with empty content", logger.Fields{"title": post.Title})
			continue
		}

		postRows, err := s.processThread(ctx, entity, in.EntityName, text, vocabulary, recordDate)
		if err != nil {
			logger.WarnWithFields("processing thread failed, skipping post", logger.Fields{
				"title": post.Title,
				"error": err.Error(),
			})
			continue
		}
		rows = append(rows, postRows...)
		report.PostsProcessed++
	}

	if err := s.metricLogs.BatchInsert(ctx, rows); err != nil {
		return nil, fmt.Errorf("inserting metric logs: %w", err)
	}
	report.RowsInserted = len(rows)

	logger.InfoWithFields("ingestion complete", logger.Fields{
		"setID":     entity.SetID,
		"posts":     report.PostsProcessed,
		"rows":      report.RowsInserted,
		"date":      recordDate.Format("2006-01-02"),
	})
	return report, nil
}

// processThread turns one thread's text into MetricLog rows: extract topic
// candidates, fold them into the vocabulary, categorize, and pair each with
// the thread's dominant emotion.
func (s *IngestService) processThread(ctx context.Context, entity *models.TrackedEntity, entityName, text string, vocabulary []string, recordDate time.Time) ([]models.MetricLog, error) {
	candidates, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extracting topics: %w", err)
	}

	emotionLabel := "neutral"
	if cl, err := s.emotion.Classify(ctx, text); err != nil {
		logger.WarnWithFields("emotion classification failed, defaulting to neutral", logger.Fields{"error": err.Error()})
	} else if cl.Label != "" {
		emotionLabel = cl.Label
	}

	adjective, err := s.adjectives.LookupOrCreate(ctx, emotionLabel, "emotion")
	if err != nil {
		return nil, err
	}

	explanation := fmt.Sprintf("Topics & emotion from post+comments about %s", entityName)

	var rows []models.MetricLog
	for _, candidate := range candidates {
		topicText, matched := matcher.Resolve(candidate, vocabulary)
		if !matched {
			topicText = candidate
		}

		category := s.assignCategory(ctx, topicText)

		topic, err := s.topics.LookupOrCreate(ctx, topicText, category)
		if err != nil {
			logger.WarnWithFields("storing topic failed, skipping", logger.Fields{
				"topic": topicText,
				"error": err.Error(),
			})
			continue
		}

		rows = append(rows, models.MetricLog{
			SetID:       entity.SetID,
			TopicID:     topic.TopicID,
			AdjectiveID: adjective.AdjectiveID,
			Impressions: 1,
			Date:        recordDate,
			Severity:    models.SeverityUnscored,
			Explanation: explanation,
		})
	}
	return rows, nil
}

func (s *IngestService) assignCategory(ctx context.Context, topic string) string {
	cl, err := s.category.Classify(ctx, topic, s.cfg.TopicCategories)
	if err != nil {
		logger.WarnWithFields("category classification failed", logger.Fields{
			"topic": topic,
			"error": err.Error(),
		})
		return "Miscellaneous"
	}
	if cl.Confidence < categoryThreshold {
		return "Miscellaneous"
	}
	return cl.Label
}

func (s *IngestService) validIndustry(name string) bool {
	for _, v := range s.cfg.ValidIndustries {
		if v == name {
			return true
		}
	}
	return false
}

func window(date time.Time) (start, end, recordDate time.Time) {
	if date.IsZero() {
		now := time.Now().UTC()
		return now.Add(-24 * time.Hour), now, now.Truncate(24 * time.Hour)
	}
	day := date.UTC().Truncate(24 * time.Hour)
	return day, day.Add(24 * time.Hour), day
}
