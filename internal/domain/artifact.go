package domain

import "time"

// Artifact is one generated creation and the anchor of its version history.
// ForkedFrom links a derivative artifact back to its immediate parent.
type Artifact struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name       string    `gorm:"column:name;type:varchar(255)" json:"name"`
	ForkedFrom *string   `gorm:"column:forked_from;type:varchar(36);index" json:"forked_from,omitempty"`
	RemixCount int       `gorm:"column:remix_count;default:0" json:"remix_count"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(36);index" json:"created_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Artifact) TableName() string { return "artifacts" }
