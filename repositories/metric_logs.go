package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/t3rryhuang/Sentiment-Insight/models"
)

type MetricLogRepository struct {
	db *gorm.DB
}

func NewMetricLogRepository(db *gorm.DB) *MetricLogRepository {
	return &MetricLogRepository{db: db}
}

// BatchInsert writes the collected raw observations in one transaction,
// rolling back all of them on failure.
func (r *MetricLogRepository) BatchInsert(ctx context.Context, rows []models.MetricLog) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// TopicMention is one MetricLog row joined with its topic text and category,
// the unit the condensation run works on.
type TopicMention struct {
	LogID       uint   `gorm:"column:logID"`
	Topic       string `gorm:"column:topic"`
	Category    string `gorm:"column:category"`
	AdjectiveID uint   `gorm:"column:adjectiveID"`
	Impressions int    `gorm:"column:impressions"`
	Severity    int    `gorm:"column:severity"`
	Explanation string `gorm:"column:explanation"`
}

// ListForEntityAndDate returns the day's mentions for one tracked entity in
// logID order. Condensation is order-sensitive, so the order is fixed here.
func (r *MetricLogRepository) ListForEntityAndDate(ctx context.Context, setID uint, date time.Time) ([]TopicMention, error) {
	var out []TopicMention
	err := r.db.WithContext(ctx).
		Table("\"MetricLog\" ml").
		Select("ml.\"logID\", t.topic, t.category, ml.\"adjectiveID\", ml.impressions, ml.severity, ml.explanation").
		Joins("JOIN \"Topic\" t ON ml.\"topicID\" = t.\"topicID\"").
		Where("ml.\"setID\" = ? AND ml.date = ?", setID, date.Format("2006-01-02")).
		Order("ml.\"logID\" ASC").
		Scan(&out).Error
	return out, err
}

// UnscoredLog is a severity == -1 row with its topic text for classification.
type UnscoredLog struct {
	LogID uint   `gorm:"column:logID"`
	Topic string `gorm:"column:topic"`
}

// ListUnscored returns every row the severity pass has not reached yet.
func (r *MetricLogRepository) ListUnscored(ctx context.Context) ([]UnscoredLog, error) {
	var out []UnscoredLog
	err := r.db.WithContext(ctx).
		Table("\"MetricLog\" ml").
		Select("ml.\"logID\", t.topic").
		Joins("JOIN \"Topic\" t ON ml.\"topicID\" = t.\"topicID\"").
		Where("ml.severity = ?", models.SeverityUnscored).
		Order("ml.\"logID\" ASC").
		Scan(&out).Error
	return out, err
}

// UpdateSeverity writes a predicted severity back onto one row.
func (r *MetricLogRepository) UpdateSeverity(ctx context.Context, logID uint, severity int) error {
	return r.db.WithContext(ctx).
		Model(&models.MetricLog{}).
		Where("\"logID\" = ?", logID).
		Update("severity", severity).Error
}
