package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Fork records that one artifact was derived from another. AncestorChain is
// the ordered list of artifact ids from the ultimate root down to the
// immediate parent, so GenerationNumber == len(AncestorChain) always holds.
type Fork struct {
	ID                 string                      `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ParentArtifactID   string                      `gorm:"column:parent_artifact_id;type:varchar(36);index" json:"parent_artifact_id"`
	ParentArtifactName string                      `gorm:"column:parent_artifact_name;type:varchar(255)" json:"parent_artifact_name"`
	OriginalCreatorID  string                      `gorm:"column:original_creator_id;type:varchar(36)" json:"original_creator_id"`
	ForkedArtifactID   string                      `gorm:"column:forked_artifact_id;type:varchar(36);uniqueIndex" json:"forked_artifact_id"`
	ForkedByUserID     string                      `gorm:"column:forked_by_user_id;type:varchar(36)" json:"forked_by_user_id"`
	GenerationNumber   int                         `gorm:"column:generation_number" json:"generation_number"`
	AncestorChain      datatypes.JSONSlice[string] `gorm:"column:ancestor_chain" json:"ancestor_chain"`
	CreatedAt          time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Fork) TableName() string { return "forks" }

// ForkTreeNode is one artifact and its direct forks, built recursively by
// the fork service for the descendant-tree view.
type ForkTreeNode struct {
	Artifact *Artifact       `json:"artifact"`
	Forks    []*ForkTreeNode `json:"forks"`
}

// RemixCredit is one resolved entry of an attribution chain, ordered from
// the root artifact down to the immediate parent.
type RemixCredit struct {
	ArtifactID string `json:"artifact_id"`
	Name       string `json:"name"`
	CreatorID  string `json:"creator_id"`
	Generation int    `json:"generation"`
}
