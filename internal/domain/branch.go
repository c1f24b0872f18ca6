package domain

import "time"

// Branch is a named pointer recording where a line of versions diverged.
// Branch names are not unique per artifact; disambiguation is by id only.
// Merging is bookkeeping (no content merge) and happens at most once.
type Branch struct {
	ID                   string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ArtifactID           string     `gorm:"column:artifact_id;type:varchar(36);index" json:"artifact_id"`
	Name                 string     `gorm:"column:name;type:varchar(100)" json:"name"`
	Description          string     `gorm:"column:description;type:varchar(500)" json:"description,omitempty"`
	CreatedFromVersionID string     `gorm:"column:created_from_version_id;type:varchar(36)" json:"created_from_version_id"`
	CreatedBy            string     `gorm:"column:created_by;type:varchar(36)" json:"created_by"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	IsMerged             bool       `gorm:"column:is_merged;default:false" json:"is_merged"`
	MergedAt             *time.Time `gorm:"column:merged_at" json:"merged_at,omitempty"`
	MergedVersionID      *string    `gorm:"column:merged_version_id;type:varchar(36)" json:"merged_version_id,omitempty"`
}

func (Branch) TableName() string { return "branches" }
