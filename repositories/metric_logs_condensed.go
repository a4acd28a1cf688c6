package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/t3rryhuang/Sentiment-Insight/models"
)

type MetricLogCondensedRepository struct {
	db *gorm.DB
}

func NewMetricLogCondensedRepository(db *gorm.DB) *MetricLogCondensedRepository {
	return &MetricLogCondensedRepository{db: db}
}

// CountForEntityAndDate backs the idempotence guard: a non-zero count means
// the (setID, date) pair was already condensed and the run must not repeat.
func (r *MetricLogCondensedRepository) CountForEntityAndDate(ctx context.Context, setID uint, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MetricLogCondensed{}).
		Where("\"setID\" = ? AND date = ?", setID, date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

// BatchInsert writes all summary rows of one condensation run in a single
// transaction so a failure leaves no partial aggregation behind.
func (r *MetricLogCondensedRepository) BatchInsert(ctx context.Context, rows []models.MetricLogCondensed) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// SeriesPoint is one condensed summary row shaped for chart consumption.
type SeriesPoint struct {
	Date        time.Time `gorm:"column:date" json:"date"`
	Topic       string    `gorm:"column:condensedTopic" json:"topic"`
	Category    string    `gorm:"column:category" json:"category"`
	Impressions int       `gorm:"column:impressions" json:"impressions"`
	Severity    int       `gorm:"column:severity" json:"severity"`
}

// Series returns the per-date condensed rows for one entity inside [start, end].
func (r *MetricLogCondensedRepository) Series(ctx context.Context, setID uint, start, end time.Time) ([]SeriesPoint, error) {
	var out []SeriesPoint
	err := r.db.WithContext(ctx).
		Table("\"MetricLogCondensed\" mlc").
		Select("mlc.date, ct.\"condensedTopic\", ct.category, mlc.impressions, mlc.severity").
		Joins("JOIN \"CondensedTopic\" ct ON mlc.\"condensedTopicID\" = ct.\"condensedTopicID\"").
		Where("mlc.\"setID\" = ? AND mlc.date >= ? AND mlc.date <= ?",
			setID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("mlc.date ASC, ct.\"condensedTopic\" ASC").
		Scan(&out).Error
	return out, err
}

// NetSeverity returns the impressions-weighted mean severity for one entity
// inside [start, end]. Unscored (-1) rows are excluded. The bool reports
// whether any scored rows existed.
func (r *MetricLogCondensedRepository) NetSeverity(ctx context.Context, setID uint, start, end time.Time) (float64, bool, error) {
	type row struct {
		Severity    int `gorm:"column:severity"`
		Impressions int `gorm:"column:impressions"`
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.MetricLogCondensed{}).
		Select("severity, impressions").
		Where("\"setID\" = ? AND date >= ? AND date <= ? AND severity <> ?",
			setID, start.Format("2006-01-02"), end.Format("2006-01-02"), models.SeverityUnscored).
		Scan(&rows).Error
	if err != nil {
		return 0, false, err
	}

	var sum, count int
	for _, r := range rows {
		sum += r.Severity * r.Impressions
		count += r.Impressions
	}
	if count == 0 {
		return 0, false, nil
	}
	return float64(sum) / float64(count), true, nil
}
