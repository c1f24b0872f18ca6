package repository

import (
	"github.com/artloom/artloom-backend/internal/domain"
	"gorm.io/gorm"
)

// VersionRepository version snapshot data access
type VersionRepository interface {
	Create(version *domain.Version) error
	FindByID(id string) (*domain.Version, error)
	FindByArtifactID(artifactID string) ([]*domain.Version, error)
	MaxVersionNumber(artifactID string) (int, error)
	CountByArtifactID(artifactID string) (int64, error)
	CountChildren(versionID string) (int64, error)
	FindOldestUnstarred(artifactID string, limit int) ([]*domain.Version, error)
	Delete(id string) error
	DeleteByIDs(ids []string) error
	SetStarred(id string, starred bool) error
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Create(version *domain.Version) error {
	return r.db.Create(version).Error
}

func (r *versionRepository) FindByID(id string) (*domain.Version, error) {
	var version domain.Version
	err := r.db.Where("id = ?", id).First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) FindByArtifactID(artifactID string) ([]*domain.Version, error) {
	var versions []*domain.Version
	err := r.db.Where("artifact_id = ?", artifactID).
		Order("version_number ASC").
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) MaxVersionNumber(artifactID string) (int, error) {
	var maxNumber *int
	err := r.db.Model(&domain.Version{}).
		Where("artifact_id = ?", artifactID).
		Select("MAX(version_number)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	if maxNumber == nil {
		return 0, nil
	}
	return *maxNumber, nil
}

func (r *versionRepository) CountByArtifactID(artifactID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Version{}).
		Where("artifact_id = ?", artifactID).
		Count(&count).Error
	return count, err
}

func (r *versionRepository) CountChildren(versionID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Version{}).
		Where("parent_version_id = ?", versionID).
		Count(&count).Error
	return count, err
}

func (r *versionRepository) FindOldestUnstarred(artifactID string, limit int) ([]*domain.Version, error) {
	var versions []*domain.Version
	err := r.db.Where("artifact_id = ? AND is_starred = ?", artifactID, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Version{}).Error
}

func (r *versionRepository) DeleteByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&domain.Version{}).Error
}

func (r *versionRepository) SetStarred(id string, starred bool) error {
	result := r.db.Model(&domain.Version{}).
		Where("id = ?", id).
		Update("is_starred", starred)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
