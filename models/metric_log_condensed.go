package models

import "time"

// MetricLogCondensed is one aggregated summary row: every MetricLog row of a
// period that maps to the same (condensed topic, adjective). Written exactly
// once per (setID, date) by the condensation run.
type MetricLogCondensed struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	SetID            uint      `gorm:"column:setID;not null;index:idx_mlc_set_date" json:"setID"`
	CondensedTopicID uint      `gorm:"column:condensedTopicID;not null" json:"condensedTopicID"`
	AdjectiveID      uint      `gorm:"column:adjectiveID;not null" json:"adjectiveID"`
	Impressions      int       `gorm:"column:impressions;not null" json:"impressions"`
	Date             time.Time `gorm:"column:date;type:date;not null;index:idx_mlc_set_date" json:"date"`
	Severity         int       `gorm:"column:severity;not null" json:"severity"`
	Explanation      string    `gorm:"column:explanation;type:text" json:"explanation"`
}

func (MetricLogCondensed) TableName() string { return "MetricLogCondensed" }
