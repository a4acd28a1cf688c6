package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/t3rryhuang/Sentiment-Insight/models"
)

// ErrLabelTooLong is returned for topic/adjective texts over 50 chars.
// Callers skip the item with a warning instead of aborting the run.
var ErrLabelTooLong = errors.New("label exceeds 50 characters")

// ErrEmptyLabel is returned for blank topic/adjective texts.
var ErrEmptyLabel = errors.New("label is empty")

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// LookupOrCreate returns the topic row for the given text, creating it when
// absent. Re-insertion of an existing topic overwrites its category with the
// fresher classification.
func (r *TopicRepository) LookupOrCreate(ctx context.Context, topic, category string) (*models.Topic, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyLabel
	}
	if len([]rune(topic)) > models.MaxNameLen {
		return nil, ErrLabelTooLong
	}

	var t models.Topic
	err := r.db.WithContext(ctx).Where("topic = ?", topic).First(&t).Error
	if err == nil {
		if t.Category != category {
			if err := r.db.WithContext(ctx).Model(&t).Update("category", category).Error; err != nil {
				return nil, err
			}
			t.Category = category
		}
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t = models.Topic{Topic: topic, Category: category}
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		var again models.Topic
		if err2 := r.db.WithContext(ctx).Where("topic = ?", topic).First(&again).Error; err2 == nil {
			return &again, nil
		}
		return nil, err
	}
	return &t, nil
}

// ListTexts returns the full topic vocabulary in topicID order. The matcher's
// greedy first-match policy depends on this order staying stable.
func (r *TopicRepository) ListTexts(ctx context.Context) ([]string, error) {
	var texts []string
	err := r.db.WithContext(ctx).
		Model(&models.Topic{}).
		Order("\"topicID\" ASC").
		Pluck("topic", &texts).Error
	return texts, err
}
