package repository

import (
	"github.com/artloom/artloom-backend/internal/domain"
	"gorm.io/gorm"
)

// ComparisonRepository comparison audit record data access
type ComparisonRepository interface {
	Create(comparison *domain.Comparison) error
	FindByVersionPair(versionAID, versionBID string) ([]*domain.Comparison, error)
}

type comparisonRepository struct {
	db *gorm.DB
}

// NewComparisonRepository creates a new ComparisonRepository
func NewComparisonRepository(db *gorm.DB) ComparisonRepository {
	return &comparisonRepository{db: db}
}

func (r *comparisonRepository) Create(comparison *domain.Comparison) error {
	return r.db.Create(comparison).Error
}

func (r *comparisonRepository) FindByVersionPair(versionAID, versionBID string) ([]*domain.Comparison, error) {
	var comparisons []*domain.Comparison
	err := r.db.Where("version_a_id = ? AND version_b_id = ?", versionAID, versionBID).
		Order("compared_at DESC").
		Find(&comparisons).Error
	return comparisons, err
}
