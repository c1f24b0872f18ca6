package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Version is an immutable snapshot of an artifact. Only IsStarred may change
// after creation; everything else is written once. ParentVersionID forms the
// history DAG (nil = root), and (artifact_id, version_number) is unique so
// concurrent writers cannot produce duplicate numbers.
type Version struct {
	ID                string            `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ArtifactID        string            `gorm:"column:artifact_id;type:varchar(36);index;uniqueIndex:idx_artifact_version,priority:1" json:"artifact_id"`
	ParentVersionID   *string           `gorm:"column:parent_version_id;type:varchar(36);index" json:"parent_version_id,omitempty"`
	VersionNumber     int               `gorm:"column:version_number;uniqueIndex:idx_artifact_version,priority:2" json:"version_number"`
	Prompt            string            `gorm:"column:prompt;type:text" json:"prompt"`
	ImageRef          string            `gorm:"column:image_ref;type:varchar(512)" json:"image_ref"`
	Settings          datatypes.JSONMap `gorm:"column:settings" json:"settings"`
	ChangeDescription string            `gorm:"column:change_description;type:varchar(500)" json:"change_description,omitempty"`
	BranchID          *string           `gorm:"column:branch_id;type:varchar(36);index" json:"branch_id,omitempty"`
	IsStarred         bool              `gorm:"column:is_starred;default:false" json:"is_starred"`
	CreatedBy         string            `gorm:"column:created_by;type:varchar(36)" json:"created_by"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Version) TableName() string { return "versions" }
