package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/diff"
	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/internal/repository"
	"github.com/artloom/artloom-backend/pkg/logger"
)

// ComparisonService computes prompt and settings diffs between two versions.
// The computed result is authoritative; the persisted Comparison row is an
// audit record written best-effort.
type ComparisonService interface {
	CompareVersions(versionAID, versionBID string) (*domain.ComparisonResult, error)
}

type comparisonService struct {
	versionRepo    repository.VersionRepository
	comparisonRepo repository.ComparisonRepository
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(
	versionRepo repository.VersionRepository,
	comparisonRepo repository.ComparisonRepository,
) ComparisonService {
	return &comparisonService{
		versionRepo:    versionRepo,
		comparisonRepo: comparisonRepo,
	}
}

// CompareVersions diffs two versions' prompts and settings and scores their
// similarity. A failed audit write is logged and does not fail the call.
func (s *comparisonService) CompareVersions(versionAID, versionBID string) (*domain.ComparisonResult, error) {
	versionA, err := s.loadVersion(versionAID)
	if err != nil {
		return nil, err
	}
	versionB, err := s.loadVersion(versionBID)
	if err != nil {
		return nil, err
	}

	result := &domain.ComparisonResult{
		VersionAID:      versionAID,
		VersionBID:      versionBID,
		PromptDiff:      diff.WordDiff(versionA.Prompt, versionB.Prompt),
		SettingsDiff:    diff.SettingsDiff(versionA.Settings, versionB.Settings),
		SimilarityScore: diff.Similarity(versionA.Prompt, versionB.Prompt),
		ComparedAt:      time.Now(),
	}

	s.persistAudit(result)
	return result, nil
}

func (s *comparisonService) loadVersion(id string) (*domain.Version, error) {
	version, err := s.versionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to load version: %w", err)
	}
	return version, nil
}

func (s *comparisonService) persistAudit(result *domain.ComparisonResult) {
	promptDiff, err := json.Marshal(result.PromptDiff)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("comparison audit: prompt diff marshal failed")
		return
	}
	settingsDiff, err := json.Marshal(result.SettingsDiff)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("comparison audit: settings diff marshal failed")
		return
	}

	record := &domain.Comparison{
		ID:              uuid.NewString(),
		VersionAID:      result.VersionAID,
		VersionBID:      result.VersionBID,
		PromptDiff:      promptDiff,
		SettingsDiff:    settingsDiff,
		SimilarityScore: result.SimilarityScore,
		ComparedAt:      result.ComparedAt,
	}
	if err := s.comparisonRepo.Create(record); err != nil {
		logger.GetLogger().Warn().Err(err).
			Str("version_a", result.VersionAID).
			Str("version_b", result.VersionBID).
			Msg("comparison audit write failed")
	}
}
