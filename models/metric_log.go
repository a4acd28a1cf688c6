package models

import "time"

// SeverityUnscored marks a MetricLog row the severity pass has not reached yet.
const SeverityUnscored = -1

// MetricLog is one raw observation: a topic mention in a thread on a given
// date, with its emotion label. Severity starts at -1 and is updated in place
// by the severity run.
type MetricLog struct {
	LogID       uint      `gorm:"column:logID;primaryKey" json:"logID"`
	SetID       uint      `gorm:"column:setID;not null;index" json:"setID"`
	TopicID     uint      `gorm:"column:topicID;not null" json:"topicID"`
	AdjectiveID uint      `gorm:"column:adjectiveID;not null" json:"adjectiveID"`
	Impressions int       `gorm:"column:impressions;not null" json:"impressions"`
	Date        time.Time `gorm:"column:date;type:date;not null;index" json:"date"`
	Severity    int       `gorm:"column:severity;not null;default:-1" json:"severity"`
	Explanation string    `gorm:"column:explanation;type:text" json:"explanation"`
}

func (MetricLog) TableName() string { return "MetricLog" }
