package models

// Topic is a raw, lexically-deduplicated topic string with its category label.
// Table: Topic, unique on topic text. Category may be overwritten when the
// same topic is extracted again with a fresher classification.
type Topic struct {
	TopicID  uint   `gorm:"column:topicID;primaryKey" json:"topicID"`
	Topic    string `gorm:"column:topic;size:50;not null;uniqueIndex" json:"topic"`
	Category string `gorm:"column:category;size:50;not null" json:"category"`
}

func (Topic) TableName() string { return "Topic" }
