package models

// Entity kinds recognized by the collector.
const (
	EntityTypeIndustry     = "Industry"
	EntityTypeSubreddit    = "Subreddit"
	EntityTypeOrganisation = "Organisation"
)

// MaxNameLen bounds display names and topic/adjective labels.
const MaxNameLen = 50

// TrackedEntity is a subject being monitored (brand / industry / community).
// Table: TrackedEntity, unique on (entityType, name).
type TrackedEntity struct {
	SetID      uint   `gorm:"column:setID;primaryKey" json:"setID"`
	EntityType string `gorm:"column:entityType;size:20;not null;uniqueIndex:uniq_type_name" json:"entityType"`
	Name       string `gorm:"column:name;size:50;not null;uniqueIndex:uniq_type_name" json:"name"`
}

func (TrackedEntity) TableName() string { return "TrackedEntity" }

// Truncate returns s cut to max runes.
func Truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
