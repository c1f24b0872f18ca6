package domain

import (
	"time"

	"gorm.io/datatypes"

	"github.com/artloom/artloom-backend/internal/diff"
)

// Comparison is a persisted snapshot of a diff between two versions. It is an
// audit/cache record: failing to write one never fails the compare call.
type Comparison struct {
	ID              string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	VersionAID      string         `gorm:"column:version_a_id;type:varchar(36);index" json:"version_a_id"`
	VersionBID      string         `gorm:"column:version_b_id;type:varchar(36);index" json:"version_b_id"`
	PromptDiff      datatypes.JSON `gorm:"column:prompt_diff" json:"prompt_diff"`
	SettingsDiff    datatypes.JSON `gorm:"column:settings_diff" json:"settings_diff"`
	SimilarityScore int            `gorm:"column:similarity_score" json:"similarity_score"`
	ComparedAt      time.Time      `gorm:"column:compared_at;autoCreateTime" json:"compared_at"`
}

func (Comparison) TableName() string { return "comparisons" }

// ComparisonResult is the in-memory result returned to callers, with the
// diffs still structured rather than serialized.
type ComparisonResult struct {
	VersionAID      string               `json:"version_a_id"`
	VersionBID      string               `json:"version_b_id"`
	PromptDiff      []diff.WordToken     `json:"prompt_diff"`
	SettingsDiff    []diff.SettingChange `json:"settings_diff"`
	SimilarityScore int                  `json:"similarity_score"`
	ComparedAt      time.Time            `json:"compared_at"`
}
