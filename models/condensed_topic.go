package models

// CondensedTopic is a canonical topic produced by semantically merging raw
// topics. Its text is immutable once created; clusters only grow.
type CondensedTopic struct {
	CondensedTopicID uint   `gorm:"column:condensedTopicID;primaryKey" json:"condensedTopicID"`
	CondensedTopic   string `gorm:"column:condensedTopic;size:50;not null;uniqueIndex" json:"condensedTopic"`
	Category         string `gorm:"column:category;size:50;not null" json:"category"`
}

func (CondensedTopic) TableName() string { return "CondensedTopic" }
