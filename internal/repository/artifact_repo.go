package repository

import (
	"github.com/artloom/artloom-backend/internal/domain"
	"gorm.io/gorm"
)

// ArtifactRepository artifact record data access
type ArtifactRepository interface {
	Create(artifact *domain.Artifact) error
	FindByID(id string) (*domain.Artifact, error)
	FindByForkedFrom(parentID string) ([]*domain.Artifact, error)
	IncrementRemixCount(id string) error
}

type artifactRepository struct {
	db *gorm.DB
}

// NewArtifactRepository creates a new ArtifactRepository
func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepository{db: db}
}

func (r *artifactRepository) Create(artifact *domain.Artifact) error {
	return r.db.Create(artifact).Error
}

func (r *artifactRepository) FindByID(id string) (*domain.Artifact, error) {
	var artifact domain.Artifact
	err := r.db.Where("id = ?", id).First(&artifact).Error
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepository) FindByForkedFrom(parentID string) ([]*domain.Artifact, error) {
	var artifacts []*domain.Artifact
	err := r.db.Where("forked_from = ?", parentID).
		Order("created_at ASC").
		Find(&artifacts).Error
	return artifacts, err
}

func (r *artifactRepository) IncrementRemixCount(id string) error {
	return r.db.Model(&domain.Artifact{}).
		Where("id = ?", id).
		UpdateColumn("remix_count", gorm.Expr("remix_count + 1")).Error
}
