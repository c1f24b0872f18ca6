package repository

import (
	"github.com/artloom/artloom-backend/internal/domain"
	"gorm.io/gorm"
)

// BranchRepository branch pointer data access
type BranchRepository interface {
	Create(branch *domain.Branch) error
	FindByID(id string) (*domain.Branch, error)
	FindByArtifactID(artifactID string) ([]*domain.Branch, error)
	Update(branch *domain.Branch) error
	Delete(id string) error
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new BranchRepository
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(branch *domain.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepository) FindByID(id string) (*domain.Branch, error) {
	var branch domain.Branch
	err := r.db.Where("id = ?", id).First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindByArtifactID(artifactID string) ([]*domain.Branch, error) {
	var branches []*domain.Branch
	err := r.db.Where("artifact_id = ?", artifactID).
		Order("created_at ASC").
		Find(&branches).Error
	return branches, err
}

func (r *branchRepository) Update(branch *domain.Branch) error {
	return r.db.Save(branch).Error
}

func (r *branchRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Branch{}).Error
}
