package repository

import (
	"github.com/artloom/artloom-backend/internal/domain"
	"gorm.io/gorm"
)

// ForkRepository fork lineage record data access
type ForkRepository interface {
	Create(fork *domain.Fork) error
	FindByForkedArtifactID(forkedArtifactID string) (*domain.Fork, error)
	FindByParentArtifactID(parentArtifactID string) ([]*domain.Fork, error)
}

type forkRepository struct {
	db *gorm.DB
}

// NewForkRepository creates a new ForkRepository
func NewForkRepository(db *gorm.DB) ForkRepository {
	return &forkRepository{db: db}
}

func (r *forkRepository) Create(fork *domain.Fork) error {
	return r.db.Create(fork).Error
}

func (r *forkRepository) FindByForkedArtifactID(forkedArtifactID string) (*domain.Fork, error) {
	var fork domain.Fork
	err := r.db.Where("forked_artifact_id = ?", forkedArtifactID).First(&fork).Error
	if err != nil {
		return nil, err
	}
	return &fork, nil
}

func (r *forkRepository) FindByParentArtifactID(parentArtifactID string) ([]*domain.Fork, error) {
	var forks []*domain.Fork
	err := r.db.Where("parent_artifact_id = ?", parentArtifactID).
		Order("created_at ASC").
		Find(&forks).Error
	return forks, err
}
