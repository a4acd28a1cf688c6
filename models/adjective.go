package models

// Adjective is an emotional/sentiment reaction label.
// Table: Adjective, unique on adjective text.
type Adjective struct {
	AdjectiveID uint   `gorm:"column:adjectiveID;primaryKey" json:"adjectiveID"`
	Adjective   string `gorm:"column:adjective;size:50;not null;uniqueIndex" json:"adjective"`
	Sentiment   string `gorm:"column:sentiment;size:20;not null" json:"sentiment"`
}

func (Adjective) TableName() string { return "Adjective" }
