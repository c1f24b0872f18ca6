package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/diff"
	"github.com/artloom/artloom-backend/internal/domain"
)

func TestCompareVersions_Success(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	comparisonRepo := new(mockComparisonRepo)
	svc := NewComparisonService(versionRepo, comparisonRepo)

	versionRepo.On("FindByID", "v-a").Return(&domain.Version{
		ID: "v-a", Prompt: "a red fox",
		Settings: map[string]interface{}{"steps": 20},
	}, nil)
	versionRepo.On("FindByID", "v-b").Return(&domain.Version{
		ID: "v-b", Prompt: "a red dog",
		Settings: map[string]interface{}{"steps": 30},
	}, nil)
	comparisonRepo.On("Create", mock.AnythingOfType("*domain.Comparison")).Return(nil)

	result, err := svc.CompareVersions("v-a", "v-b")

	assert.NoError(t, err)
	assert.Equal(t, []diff.WordToken{
		{Type: diff.Unchanged, Text: "a"},
		{Type: diff.Unchanged, Text: "red"},
		{Type: diff.Removed, Text: "fox"},
		{Type: diff.Added, Text: "dog"},
	}, result.PromptDiff)
	assert.Equal(t, 50, result.SimilarityScore)
	assert.Len(t, result.SettingsDiff, 1)
	assert.Equal(t, "steps", result.SettingsDiff[0].Key)
	comparisonRepo.AssertExpectations(t)
}

func TestCompareVersions_AuditWriteFailureIsNonFatal(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	comparisonRepo := new(mockComparisonRepo)
	svc := NewComparisonService(versionRepo, comparisonRepo)

	versionRepo.On("FindByID", "v-a").Return(&domain.Version{ID: "v-a", Prompt: "x"}, nil)
	versionRepo.On("FindByID", "v-b").Return(&domain.Version{ID: "v-b", Prompt: "x"}, nil)
	comparisonRepo.On("Create", mock.AnythingOfType("*domain.Comparison")).Return(errors.New("store down"))

	result, err := svc.CompareVersions("v-a", "v-b")

	assert.NoError(t, err)
	assert.Equal(t, 100, result.SimilarityScore)
}

func TestCompareVersions_VersionNotFound(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	svc := NewComparisonService(versionRepo, new(mockComparisonRepo))

	versionRepo.On("FindByID", "v-a").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CompareVersions("v-a", "v-b")

	assert.ErrorIs(t, err, common.ErrVersionNotFound)
}
