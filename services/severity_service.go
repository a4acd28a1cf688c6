package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/t3rryhuang/Sentiment-Insight/classifier"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
)

// severityConfidenceThreshold is the minimum classifier confidence; below it
// the neutral fallback severity is written instead of the predicted one.
const (
	severityConfidenceThreshold = 0.2
	severityFallback            = 5
)

// SeverityService backfills severity for MetricLog rows still carrying the
// unscored sentinel, predicting from the topic text alone.
type SeverityService struct {
	classifier classifier.SeverityClassifier
	metricLogs *repositories.MetricLogRepository
}

func NewSeverityService(cl classifier.SeverityClassifier, metricLogs *repositories.MetricLogRepository) *SeverityService {
	return &SeverityService{classifier: cl, metricLogs: metricLogs}
}

func (s *SeverityService) Run(ctx context.Context) (int, error) {
	entries, err := s.metricLogs.ListUnscored(ctx)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		logger.Log.Info("no unscored rows, nothing to do")
		return 0, nil
	}
	logger.InfoWithFields("scoring unscored metric logs", logger.Fields{"rows": len(entries)})

	updated := 0
	for _, entry := range entries {
		topic := strings.TrimSpace(entry.Topic)
		if topic == "" {
			logger.WarnWithFields("no topic text, skipping", logger.Fields{"logID": entry.LogID})
			continue
		}

		severity, ok := s.classifyTopic(ctx, topic)
		if !ok {
			continue
		}

		if err := s.metricLogs.UpdateSeverity(ctx, entry.LogID, severity); err != nil {
			logger.ErrorWithFields("updating severity failed", logger.Fields{
				"logID": entry.LogID,
				"error": err.Error(),
			})
			continue
		}
		updated++
	}

	logger.InfoWithFields("severity update complete", logger.Fields{"updated": updated})
	return updated, nil
}

// classifyTopic maps the classifier's LABEL_N output to severity N+1 and
// applies the confidence fallback.
func (s *SeverityService) classifyTopic(ctx context.Context, topic string) (int, bool) {
	cl, err := s.classifier.Classify(ctx, topic)
	if err != nil {
		logger.WarnWithFields("severity classification failed, skipping", logger.Fields{
			"topic": topic,
			"error": err.Error(),
		})
		return 0, false
	}

	severity := severityFromLabel(cl.Label)
	if cl.Confidence < severityConfidenceThreshold {
		logger.WarnWithFields("low confidence, using fallback severity", logger.Fields{
			"topic":      topic,
			"label":      cl.Label,
			"confidence": cl.Confidence,
		})
		severity = severityFallback
	}
	return severity, true
}

// severityFromLabel parses "LABEL_N" into severity N+1. Unexpected label
// formats map to the neutral fallback.
func severityFromLabel(label string) int {
	idx := strings.LastIndex(label, "_")
	if idx < 0 {
		return severityFallback
	}
	n, err := strconv.Atoi(label[idx+1:])
	if err != nil {
		return severityFallback
	}
	return n + 1
}
