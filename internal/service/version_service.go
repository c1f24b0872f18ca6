package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/config"
	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/internal/repository"
	"github.com/artloom/artloom-backend/pkg/cache"
	"github.com/artloom/artloom-backend/pkg/logger"
)

// CreateVersionInput carries the snapshot content for a new version.
type CreateVersionInput struct {
	ArtifactID        string
	Prompt            string
	ImageRef          string
	Settings          map[string]interface{}
	ChangeDescription string
	ParentVersionID   *string
	BranchID          *string
}

// VersionService owns the version graph of an artifact: creation and
// numbering, restore, leaf-only deletion, starring and capacity pruning.
type VersionService interface {
	CreateVersion(userID string, input CreateVersionInput) (*domain.Version, error)
	RestoreVersion(userID, artifactID, versionID string) (*domain.Version, error)
	DeleteVersion(versionID string) error
	GetVersions(artifactID string) ([]*domain.Version, error)
	SetStarred(versionID string, starred bool) error
}

type versionService struct {
	versionRepo  repository.VersionRepository
	artifactRepo repository.ArtifactRepository
	cache        cache.Service
	cfg          config.VersioningConfig

	// serializes the read-max/insert sequence per artifact so concurrent
	// creators cannot compute the same version number; the composite unique
	// index on (artifact_id, version_number) is the store-level backstop
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewVersionService creates a new VersionService
func NewVersionService(
	versionRepo repository.VersionRepository,
	artifactRepo repository.ArtifactRepository,
	cacheSvc cache.Service,
	cfg config.VersioningConfig,
) VersionService {
	return &versionService{
		versionRepo:  versionRepo,
		artifactRepo: artifactRepo,
		cache:        cacheSvc,
		cfg:          cfg,
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *versionService) artifactLock(artifactID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	if lock, ok := s.locks[artifactID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	s.locks[artifactID] = lock
	return lock
}

// CreateVersion appends a new snapshot to the artifact's version graph.
// Numbering starts at 1 and is strictly increasing per artifact. When the
// artifact is at capacity the pruning pass runs first; pruning makes room
// but never blocks creation.
func (s *versionService) CreateVersion(userID string, input CreateVersionInput) (*domain.Version, error) {
	if userID == "" {
		return nil, common.ErrNotAuthenticated
	}

	if _, err := s.artifactRepo.FindByID(input.ArtifactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to load artifact: %w", err)
	}

	if input.ParentVersionID != nil {
		parent, err := s.versionRepo.FindByID(*input.ParentVersionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.ErrVersionNotFound
			}
			return nil, fmt.Errorf("failed to load parent version: %w", err)
		}
		if parent.ArtifactID != input.ArtifactID {
			return nil, common.ErrVersionMismatch
		}
	}

	lock := s.artifactLock(input.ArtifactID)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.versionRepo.CountByArtifactID(input.ArtifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to count versions: %w", err)
	}
	if count >= int64(s.cfg.MaxVersions) {
		s.pruneOldest(input.ArtifactID)
	}

	maxNumber, err := s.versionRepo.MaxVersionNumber(input.ArtifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine version number: %w", err)
	}

	version := &domain.Version{
		ID:                uuid.NewString(),
		ArtifactID:        input.ArtifactID,
		ParentVersionID:   input.ParentVersionID,
		VersionNumber:     maxNumber + 1,
		Prompt:            input.Prompt,
		ImageRef:          input.ImageRef,
		Settings:          input.Settings,
		ChangeDescription: input.ChangeDescription,
		BranchID:          input.BranchID,
		CreatedBy:         userID,
	}

	if err := s.versionRepo.Create(version); err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}

	s.invalidateTree(input.ArtifactID)
	return version, nil
}

// pruneOldest removes up to PruneBatch of the oldest non-starred versions.
// Best-effort soft cap: when everything is starred nothing is removed and
// the artifact may exceed the nominal cap.
func (s *versionService) pruneOldest(artifactID string) {
	candidates, err := s.versionRepo.FindOldestUnstarred(artifactID, s.cfg.PruneBatch)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Str("artifact_id", artifactID).Msg("prune: failed to load candidates")
		return
	}
	if len(candidates) == 0 {
		return
	}

	ids := make([]string, len(candidates))
	for i, v := range candidates {
		ids[i] = v.ID
	}
	if err := s.versionRepo.DeleteByIDs(ids); err != nil {
		logger.GetLogger().Warn().Err(err).Str("artifact_id", artifactID).Msg("prune: delete failed")
		return
	}
	logger.GetLogger().Info().Str("artifact_id", artifactID).Int("pruned", len(ids)).Msg("pruned old versions")
}

// RestoreVersion appends a new head carrying the target version's content.
// Restore is additive: it never rewrites or removes history.
func (s *versionService) RestoreVersion(userID, artifactID, versionID string) (*domain.Version, error) {
	if userID == "" {
		return nil, common.ErrNotAuthenticated
	}

	target, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to load version: %w", err)
	}
	if target.ArtifactID != artifactID {
		return nil, common.ErrVersionMismatch
	}

	return s.CreateVersion(userID, CreateVersionInput{
		ArtifactID:        artifactID,
		Prompt:            target.Prompt,
		ImageRef:          target.ImageRef,
		Settings:          target.Settings,
		ChangeDescription: fmt.Sprintf("Restored from version %d", target.VersionNumber),
		ParentVersionID:   &target.ID,
	})
}

// DeleteVersion removes a leaf version. Versions with children are refused
// so no subtree is ever orphaned.
func (s *versionService) DeleteVersion(versionID string) error {
	version, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrVersionNotFound
		}
		return fmt.Errorf("failed to load version: %w", err)
	}

	children, err := s.versionRepo.CountChildren(versionID)
	if err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	if children > 0 {
		return common.ErrHasChildren
	}

	if err := s.versionRepo.Delete(versionID); err != nil {
		return fmt.Errorf("failed to delete version: %w", err)
	}

	s.invalidateTree(version.ArtifactID)
	return nil
}

// GetVersions returns the artifact's versions ascending by version number.
func (s *versionService) GetVersions(artifactID string) ([]*domain.Version, error) {
	versions, err := s.versionRepo.FindByArtifactID(artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return versions, nil
}

// SetStarred toggles the pruning exemption, the only mutation a version allows.
func (s *versionService) SetStarred(versionID string, starred bool) error {
	version, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrVersionNotFound
		}
		return fmt.Errorf("failed to load version: %w", err)
	}

	if err := s.versionRepo.SetStarred(versionID, starred); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrVersionNotFound
		}
		return fmt.Errorf("failed to update star: %w", err)
	}

	s.invalidateTree(version.ArtifactID)
	return nil
}

// invalidateTree evicts the artifact's family tree cache entry. Eviction is
// synchronous on every version mutation; the TTL only bounds staleness.
func (s *versionService) invalidateTree(artifactID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), cache.TreeKey(artifactID)); err != nil {
		logger.GetLogger().Warn().Err(err).Str("artifact_id", artifactID).Msg("failed to invalidate tree cache")
	}
}
