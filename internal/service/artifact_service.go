package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/internal/repository"
)

// CreateArtifactInput carries a new artifact and its first version's content.
type CreateArtifactInput struct {
	Name     string
	Prompt   string
	ImageRef string
	Settings map[string]interface{}
}

// ArtifactService manages the minimal artifact identity records that anchor
// version graphs and fork lineages.
type ArtifactService interface {
	CreateArtifact(userID string, input CreateArtifactInput) (*domain.Artifact, *domain.Version, error)
	GetArtifact(id string) (*domain.Artifact, error)
}

type artifactService struct {
	artifactRepo repository.ArtifactRepository
	versionSvc   VersionService
}

// NewArtifactService creates a new ArtifactService
func NewArtifactService(artifactRepo repository.ArtifactRepository, versionSvc VersionService) ArtifactService {
	return &artifactService{
		artifactRepo: artifactRepo,
		versionSvc:   versionSvc,
	}
}

// CreateArtifact creates the artifact record and seeds version 1.
func (s *artifactService) CreateArtifact(userID string, input CreateArtifactInput) (*domain.Artifact, *domain.Version, error) {
	if userID == "" {
		return nil, nil, common.ErrNotAuthenticated
	}
	if input.Name == "" {
		return nil, nil, common.ErrInvalidInput
	}

	artifact := &domain.Artifact{
		ID:        uuid.NewString(),
		Name:      input.Name,
		CreatedBy: userID,
	}
	if err := s.artifactRepo.Create(artifact); err != nil {
		return nil, nil, fmt.Errorf("failed to create artifact: %w", err)
	}

	version, err := s.versionSvc.CreateVersion(userID, CreateVersionInput{
		ArtifactID:        artifact.ID,
		Prompt:            input.Prompt,
		ImageRef:          input.ImageRef,
		Settings:          input.Settings,
		ChangeDescription: "Initial version",
	})
	if err != nil {
		return nil, nil, err
	}

	return artifact, version, nil
}

func (s *artifactService) GetArtifact(id string) (*domain.Artifact, error) {
	artifact, err := s.artifactRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to load artifact: %w", err)
	}
	return artifact, nil
}
