package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/internal/repository"
	"github.com/artloom/artloom-backend/pkg/cache"
	"github.com/artloom/artloom-backend/pkg/logger"
)

// BranchService manages named divergence pointers into an artifact's version
// graph. Merge is bookkeeping only; no content is ever merged.
type BranchService interface {
	CreateBranch(userID, artifactID, fromVersionID, name, description string) (*domain.Branch, error)
	ListBranches(artifactID string) ([]*domain.Branch, error)
	MergeBranch(branchID, mergeVersionID string) (*domain.Branch, error)
	DeleteBranch(branchID string) error
}

type branchService struct {
	branchRepo  repository.BranchRepository
	versionRepo repository.VersionRepository
	cache       cache.Service
}

// NewBranchService creates a new BranchService
func NewBranchService(
	branchRepo repository.BranchRepository,
	versionRepo repository.VersionRepository,
	cacheSvc cache.Service,
) BranchService {
	return &branchService{
		branchRepo:  branchRepo,
		versionRepo: versionRepo,
		cache:       cacheSvc,
	}
}

// CreateBranch records a new divergence from an existing version. Branch
// names are intentionally not unique per artifact; callers disambiguate by id.
func (s *branchService) CreateBranch(userID, artifactID, fromVersionID, name, description string) (*domain.Branch, error) {
	if userID == "" {
		return nil, common.ErrNotAuthenticated
	}
	if name == "" {
		return nil, common.ErrInvalidInput
	}

	fromVersion, err := s.versionRepo.FindByID(fromVersionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to load source version: %w", err)
	}
	if fromVersion.ArtifactID != artifactID {
		return nil, common.ErrVersionMismatch
	}

	branch := &domain.Branch{
		ID:                   uuid.NewString(),
		ArtifactID:           artifactID,
		Name:                 name,
		Description:          description,
		CreatedFromVersionID: fromVersionID,
		CreatedBy:            userID,
	}

	if err := s.branchRepo.Create(branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	s.invalidateTree(artifactID)
	return branch, nil
}

func (s *branchService) ListBranches(artifactID string) ([]*domain.Branch, error) {
	branches, err := s.branchRepo.FindByArtifactID(artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// MergeBranch marks the branch as reconciled into mergeVersionID. A branch
// merges at most once; merging an already-merged branch is a no-op.
func (s *branchService) MergeBranch(branchID, mergeVersionID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindByID(branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to load branch: %w", err)
	}

	if branch.IsMerged {
		return branch, nil
	}

	now := time.Now()
	branch.IsMerged = true
	branch.MergedAt = &now
	branch.MergedVersionID = &mergeVersionID

	if err := s.branchRepo.Update(branch); err != nil {
		return nil, fmt.Errorf("failed to merge branch: %w", err)
	}

	s.invalidateTree(branch.ArtifactID)
	return branch, nil
}

// DeleteBranch removes the pointer only. Versions created on the branch
// survive with their branch_id now referencing a deleted record.
func (s *branchService) DeleteBranch(branchID string) error {
	branch, err := s.branchRepo.FindByID(branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrBranchNotFound
		}
		return fmt.Errorf("failed to load branch: %w", err)
	}

	if err := s.branchRepo.Delete(branchID); err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	s.invalidateTree(branch.ArtifactID)
	return nil
}

func (s *branchService) invalidateTree(artifactID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), cache.TreeKey(artifactID)); err != nil {
		logger.GetLogger().Warn().Err(err).Str("artifact_id", artifactID).Msg("failed to invalidate tree cache")
	}
}
