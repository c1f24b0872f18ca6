package service

import (
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitStructured("dev")
	os.Exit(m.Run())
}

// --- Mock VersionRepository ---

type mockVersionRepo struct {
	mock.Mock
}

func (m *mockVersionRepo) Create(version *domain.Version) error {
	return m.Called(version).Error(0)
}

func (m *mockVersionRepo) FindByID(id string) (*domain.Version, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Version), args.Error(1)
}

func (m *mockVersionRepo) FindByArtifactID(artifactID string) ([]*domain.Version, error) {
	args := m.Called(artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Version), args.Error(1)
}

func (m *mockVersionRepo) MaxVersionNumber(artifactID string) (int, error) {
	args := m.Called(artifactID)
	return args.Int(0), args.Error(1)
}

func (m *mockVersionRepo) CountByArtifactID(artifactID string) (int64, error) {
	args := m.Called(artifactID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVersionRepo) CountChildren(versionID string) (int64, error) {
	args := m.Called(versionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVersionRepo) FindOldestUnstarred(artifactID string, limit int) ([]*domain.Version, error) {
	args := m.Called(artifactID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Version), args.Error(1)
}

func (m *mockVersionRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockVersionRepo) DeleteByIDs(ids []string) error {
	return m.Called(ids).Error(0)
}

func (m *mockVersionRepo) SetStarred(id string, starred bool) error {
	return m.Called(id, starred).Error(0)
}

// --- Mock ArtifactRepository ---

type mockArtifactRepo struct {
	mock.Mock
}

func (m *mockArtifactRepo) Create(artifact *domain.Artifact) error {
	return m.Called(artifact).Error(0)
}

func (m *mockArtifactRepo) FindByID(id string) (*domain.Artifact, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *mockArtifactRepo) FindByForkedFrom(parentID string) ([]*domain.Artifact, error) {
	args := m.Called(parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Artifact), args.Error(1)
}

func (m *mockArtifactRepo) IncrementRemixCount(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock BranchRepository ---

type mockBranchRepo struct {
	mock.Mock
}

func (m *mockBranchRepo) Create(branch *domain.Branch) error {
	return m.Called(branch).Error(0)
}

func (m *mockBranchRepo) FindByID(id string) (*domain.Branch, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *mockBranchRepo) FindByArtifactID(artifactID string) ([]*domain.Branch, error) {
	args := m.Called(artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Branch), args.Error(1)
}

func (m *mockBranchRepo) Update(branch *domain.Branch) error {
	return m.Called(branch).Error(0)
}

func (m *mockBranchRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

// --- Mock ComparisonRepository ---

type mockComparisonRepo struct {
	mock.Mock
}

func (m *mockComparisonRepo) Create(comparison *domain.Comparison) error {
	return m.Called(comparison).Error(0)
}

func (m *mockComparisonRepo) FindByVersionPair(versionAID, versionBID string) ([]*domain.Comparison, error) {
	args := m.Called(versionAID, versionBID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comparison), args.Error(1)
}

// --- Mock ForkRepository ---

type mockForkRepo struct {
	mock.Mock
}

func (m *mockForkRepo) Create(fork *domain.Fork) error {
	return m.Called(fork).Error(0)
}

func (m *mockForkRepo) FindByForkedArtifactID(forkedArtifactID string) (*domain.Fork, error) {
	args := m.Called(forkedArtifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fork), args.Error(1)
}

func (m *mockForkRepo) FindByParentArtifactID(parentArtifactID string) ([]*domain.Fork, error) {
	args := m.Called(parentArtifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Fork), args.Error(1)
}
