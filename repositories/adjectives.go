package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/t3rryhuang/Sentiment-Insight/models"
)

type AdjectiveRepository struct {
	db *gorm.DB
}

func NewAdjectiveRepository(db *gorm.DB) *AdjectiveRepository {
	return &AdjectiveRepository{db: db}
}

// LookupOrCreate returns the adjective row for the given label, creating it
// once per distinct label.
func (r *AdjectiveRepository) LookupOrCreate(ctx context.Context, adjective, sentiment string) (*models.Adjective, error) {
	adjective = strings.TrimSpace(adjective)
	if adjective == "" {
		return nil, ErrEmptyLabel
	}
	if len([]rune(adjective)) > models.MaxNameLen {
		return nil, ErrLabelTooLong
	}

	var a models.Adjective
	err := r.db.WithContext(ctx).Where("adjective = ?", adjective).First(&a).Error
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a = models.Adjective{Adjective: adjective, Sentiment: sentiment}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		var again models.Adjective
		if err2 := r.db.WithContext(ctx).Where("adjective = ?", adjective).First(&again).Error; err2 == nil {
			return &again, nil
		}
		return nil, err
	}
	return &a, nil
}
