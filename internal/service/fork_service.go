package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/internal/repository"
	"github.com/artloom/artloom-backend/pkg/logger"
)

// ForkArtifactInput carries the content of a fork's first version.
type ForkArtifactInput struct {
	Name     string
	Prompt   string
	ImageRef string
	Settings map[string]interface{}
}

// ForkResult identifies the new lineage created by a fork.
type ForkResult struct {
	NewArtifactID string `json:"new_artifact_id"`
	NewVersionID  string `json:"new_version_id"`
}

// ForkService spins up new artifact lineages rooted in existing artifacts
// and reconstructs the fork ancestry in both directions.
type ForkService interface {
	ForkArtifact(userID, originalArtifactID string, input ForkArtifactInput) (*ForkResult, error)
	GetForkTree(artifactID string) (*domain.ForkTreeNode, error)
	GetRemixCredits(artifactID string) ([]*domain.RemixCredit, error)
}

type forkService struct {
	artifactRepo repository.ArtifactRepository
	forkRepo     repository.ForkRepository
	versionSvc   VersionService
}

// NewForkService creates a new ForkService
func NewForkService(
	artifactRepo repository.ArtifactRepository,
	forkRepo repository.ForkRepository,
	versionSvc VersionService,
) ForkService {
	return &forkService{
		artifactRepo: artifactRepo,
		forkRepo:     forkRepo,
		versionSvc:   versionSvc,
	}
}

// ForkArtifact creates a brand-new artifact derived from the original, seeds
// its version 1 and records the ancestor chain. The chain lists artifact ids
// from the ultimate root down to the immediate parent, so the generation
// number always equals its length. The remix counter bump on the original is
// best-effort.
func (s *forkService) ForkArtifact(userID, originalArtifactID string, input ForkArtifactInput) (*ForkResult, error) {
	if userID == "" {
		return nil, common.ErrNotAuthenticated
	}

	original, err := s.artifactRepo.FindByID(originalArtifactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to load original artifact: %w", err)
	}

	name := input.Name
	if name == "" {
		name = fmt.Sprintf("Fork of %s", original.Name)
	}

	forked := &domain.Artifact{
		ID:         uuid.NewString(),
		Name:       name,
		ForkedFrom: &original.ID,
		CreatedBy:  userID,
	}
	if err := s.artifactRepo.Create(forked); err != nil {
		return nil, fmt.Errorf("failed to create forked artifact: %w", err)
	}

	version, err := s.versionSvc.CreateVersion(userID, CreateVersionInput{
		ArtifactID:        forked.ID,
		Prompt:            input.Prompt,
		ImageRef:          input.ImageRef,
		Settings:          input.Settings,
		ChangeDescription: fmt.Sprintf("Forked from %s", original.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed fork version: %w", err)
	}

	ancestorChain := []string{originalArtifactID}
	if parentFork, err := s.forkRepo.FindByForkedArtifactID(originalArtifactID); err == nil {
		ancestorChain = append(append([]string{}, parentFork.AncestorChain...), originalArtifactID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load parent fork record: %w", err)
	}

	fork := &domain.Fork{
		ID:                 uuid.NewString(),
		ParentArtifactID:   original.ID,
		ParentArtifactName: original.Name,
		OriginalCreatorID:  original.CreatedBy,
		ForkedArtifactID:   forked.ID,
		ForkedByUserID:     userID,
		GenerationNumber:   len(ancestorChain),
		AncestorChain:      ancestorChain,
	}
	if err := s.forkRepo.Create(fork); err != nil {
		return nil, fmt.Errorf("failed to record fork: %w", err)
	}

	if err := s.artifactRepo.IncrementRemixCount(original.ID); err != nil {
		logger.GetLogger().Warn().Err(err).Str("artifact_id", original.ID).Msg("remix count bump failed")
	}

	return &ForkResult{NewArtifactID: forked.ID, NewVersionID: version.ID}, nil
}

// GetForkTree finds the true root by walking forked_from pointers upward,
// then builds the full descendant tree below it.
func (s *forkService) GetForkTree(artifactID string) (*domain.ForkTreeNode, error) {
	current, err := s.artifactRepo.FindByID(artifactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to load artifact: %w", err)
	}

	// Up-walk to the root. The visited set stops a corrupted forked_from
	// cycle from hanging the walk.
	visited := map[string]struct{}{current.ID: {}}
	for current.ForkedFrom != nil {
		parent, err := s.artifactRepo.FindByID(*current.ForkedFrom)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break // parent deleted, current is the highest reachable ancestor
			}
			return nil, fmt.Errorf("failed to load ancestor artifact: %w", err)
		}
		if _, seen := visited[parent.ID]; seen {
			logger.GetLogger().Warn().Str("artifact_id", artifactID).Msg("fork tree: forked_from cycle detected")
			break
		}
		visited[parent.ID] = struct{}{}
		current = parent
	}

	return s.buildForkNode(current)
}

func (s *forkService) buildForkNode(artifact *domain.Artifact) (*domain.ForkTreeNode, error) {
	node := &domain.ForkTreeNode{
		Artifact: artifact,
		Forks:    []*domain.ForkTreeNode{},
	}

	children, err := s.artifactRepo.FindByForkedFrom(artifact.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load forks of %s: %w", artifact.ID, err)
	}
	for _, child := range children {
		childNode, err := s.buildForkNode(child)
		if err != nil {
			return nil, err
		}
		node.Forks = append(node.Forks, childNode)
	}

	return node, nil
}

// GetRemixCredits resolves the artifact's ancestor chain into display
// entries ordered root-first. A root artifact has no fork record and gets an
// empty chain.
func (s *forkService) GetRemixCredits(artifactID string) ([]*domain.RemixCredit, error) {
	fork, err := s.forkRepo.FindByForkedArtifactID(artifactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*domain.RemixCredit{}, nil
		}
		return nil, fmt.Errorf("failed to load fork record: %w", err)
	}

	credits := make([]*domain.RemixCredit, 0, len(fork.AncestorChain))
	for i, ancestorID := range fork.AncestorChain {
		credit := &domain.RemixCredit{
			ArtifactID: ancestorID,
			Generation: i + 1,
		}
		ancestor, err := s.artifactRepo.FindByID(ancestorID)
		if err != nil {
			// ancestor rows can be gone; keep the id in the chain
			logger.GetLogger().Warn().Err(err).Str("artifact_id", ancestorID).Msg("remix credits: ancestor lookup failed")
		} else {
			credit.Name = ancestor.Name
			credit.CreatorID = ancestor.CreatedBy
		}
		credits = append(credits, credit)
	}

	return credits, nil
}
