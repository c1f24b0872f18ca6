package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/pkg/cache"
)

func TestCreateBranch_Success(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	versionRepo := new(mockVersionRepo)
	svc := NewBranchService(branchRepo, versionRepo, cache.NewMemoryService())

	versionRepo.On("FindByID", "v-3").Return(&domain.Version{ID: "v-3", ArtifactID: "art-1"}, nil)
	branchRepo.On("Create", mock.AnythingOfType("*domain.Branch")).Return(nil)

	branch, err := svc.CreateBranch("user-1", "art-1", "v-3", "warm palette", "try warmer tones")

	assert.NoError(t, err)
	assert.Equal(t, "warm palette", branch.Name)
	assert.Equal(t, "v-3", branch.CreatedFromVersionID)
	assert.False(t, branch.IsMerged)
	branchRepo.AssertExpectations(t)
}

func TestCreateBranch_SourceVersionMissing(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	versionRepo := new(mockVersionRepo)
	svc := NewBranchService(branchRepo, versionRepo, cache.NewMemoryService())

	versionRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateBranch("user-1", "art-1", "missing", "name", "")

	assert.ErrorIs(t, err, common.ErrVersionNotFound)
	branchRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateBranch_WrongArtifact(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	versionRepo := new(mockVersionRepo)
	svc := NewBranchService(branchRepo, versionRepo, cache.NewMemoryService())

	versionRepo.On("FindByID", "v-3").Return(&domain.Version{ID: "v-3", ArtifactID: "art-2"}, nil)

	_, err := svc.CreateBranch("user-1", "art-1", "v-3", "name", "")

	assert.ErrorIs(t, err, common.ErrVersionMismatch)
}

func TestCreateBranch_DuplicateNamesAllowed(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	versionRepo := new(mockVersionRepo)
	svc := NewBranchService(branchRepo, versionRepo, cache.NewMemoryService())

	versionRepo.On("FindByID", "v-3").Return(&domain.Version{ID: "v-3", ArtifactID: "art-1"}, nil)
	branchRepo.On("Create", mock.AnythingOfType("*domain.Branch")).Return(nil)

	first, err := svc.CreateBranch("user-1", "art-1", "v-3", "same name", "")
	assert.NoError(t, err)
	second, err := svc.CreateBranch("user-1", "art-1", "v-3", "same name", "")
	assert.NoError(t, err)

	// same name, distinct identities
	assert.Equal(t, first.Name, second.Name)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestMergeBranch_SetsBookkeeping(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	svc := NewBranchService(branchRepo, new(mockVersionRepo), cache.NewMemoryService())

	branchRepo.On("FindByID", "br-1").Return(&domain.Branch{ID: "br-1", ArtifactID: "art-1"}, nil)
	branchRepo.On("Update", mock.AnythingOfType("*domain.Branch")).Return(nil)

	merged, err := svc.MergeBranch("br-1", "v-9")

	assert.NoError(t, err)
	assert.True(t, merged.IsMerged)
	assert.NotNil(t, merged.MergedAt)
	assert.Equal(t, "v-9", *merged.MergedVersionID)
}

func TestMergeBranch_SecondMergeIsNoOp(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	svc := NewBranchService(branchRepo, new(mockVersionRepo), cache.NewMemoryService())

	already := &domain.Branch{ID: "br-1", ArtifactID: "art-1", IsMerged: true}
	branchRepo.On("FindByID", "br-1").Return(already, nil)

	merged, err := svc.MergeBranch("br-1", "v-10")

	assert.NoError(t, err)
	assert.True(t, merged.IsMerged)
	assert.Nil(t, merged.MergedVersionID) // untouched
	branchRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDeleteBranch_Unconditional(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	svc := NewBranchService(branchRepo, new(mockVersionRepo), cache.NewMemoryService())

	branchRepo.On("FindByID", "br-1").Return(&domain.Branch{ID: "br-1", ArtifactID: "art-1"}, nil)
	branchRepo.On("Delete", "br-1").Return(nil)

	assert.NoError(t, svc.DeleteBranch("br-1"))
	branchRepo.AssertExpectations(t)
}

func TestDeleteBranch_NotFound(t *testing.T) {
	branchRepo := new(mockBranchRepo)
	svc := NewBranchService(branchRepo, new(mockVersionRepo), cache.NewMemoryService())

	branchRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.DeleteBranch("missing"), common.ErrBranchNotFound)
}
