package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/t3rryhuang/Sentiment-Insight/models"
)

type CondensedTopicRepository struct {
	db *gorm.DB
}

func NewCondensedTopicRepository(db *gorm.DB) *CondensedTopicRepository {
	return &CondensedTopicRepository{db: db}
}

// Create inserts a new condensed topic. The text is immutable once created.
func (r *CondensedTopicRepository) Create(ctx context.Context, text, category string) (*models.CondensedTopic, error) {
	ct := models.CondensedTopic{
		CondensedTopic: models.Truncate(strings.TrimSpace(text), models.MaxNameLen),
		Category:       category,
	}
	if err := r.db.WithContext(ctx).Create(&ct).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

// ListAll returns every condensed topic in creation order. The condensation
// run embeds these to seed its in-memory cluster index.
func (r *CondensedTopicRepository) ListAll(ctx context.Context) ([]models.CondensedTopic, error) {
	var out []models.CondensedTopic
	err := r.db.WithContext(ctx).
		Order("\"condensedTopicID\" ASC").
		Find(&out).Error
	return out, err
}

func (r *CondensedTopicRepository) GetByID(ctx context.Context, id uint) (*models.CondensedTopic, error) {
	var ct models.CondensedTopic
	if err := r.db.WithContext(ctx).First(&ct, "\"condensedTopicID\" = ?", id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}
