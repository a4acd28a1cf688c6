package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/t3rryhuang/Sentiment-Insight/models"
)

type TrackedEntityRepository struct {
	db *gorm.DB
}

func NewTrackedEntityRepository(db *gorm.DB) *TrackedEntityRepository {
	return &TrackedEntityRepository{db: db}
}

// LookupOrCreate returns the entity identified by (entityType, name),
// creating it on first mention. Names longer than 50 chars are truncated.
// Uniqueness under concurrent runs is enforced by the unique index, so a
// conflicting insert falls back to a re-read.
func (r *TrackedEntityRepository) LookupOrCreate(ctx context.Context, entityType, name string) (*models.TrackedEntity, error) {
	name = models.Truncate(strings.TrimSpace(name), models.MaxNameLen)

	var e models.TrackedEntity
	err := r.db.WithContext(ctx).
		Where("\"entityType\" = ? AND name = ?", entityType, name).
		First(&e).Error
	if err == nil {
		return &e, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	e = models.TrackedEntity{EntityType: entityType, Name: name}
	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		// Lost a race against another run; the row exists now.
		var again models.TrackedEntity
		if err2 := r.db.WithContext(ctx).
			Where("\"entityType\" = ? AND name = ?", entityType, name).
			First(&again).Error; err2 == nil {
			return &again, nil
		}
		return nil, err
	}
	return &e, nil
}

// SearchByName returns up to limit entities whose name contains q.
func (r *TrackedEntityRepository) SearchByName(ctx context.Context, q string, limit int) ([]models.TrackedEntity, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []models.TrackedEntity
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+q+"%").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *TrackedEntityRepository) GetByID(ctx context.Context, setID uint) (*models.TrackedEntity, error) {
	var e models.TrackedEntity
	if err := r.db.WithContext(ctx).First(&e, "\"setID\" = ?", setID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}
