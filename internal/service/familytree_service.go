package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/internal/repository"
	"github.com/artloom/artloom-backend/pkg/cache"
	"github.com/artloom/artloom-backend/pkg/logger"
)

// Node spacing in the rendered tree view.
const (
	treeNodeSpacingX = 180
	treeBranchRowY   = 120
)

// FamilyTreeService builds the renderable version/branch graph of an
// artifact and the level-annotated lineage. Trees are cached per artifact;
// version and branch mutations evict the entry synchronously, the TTL only
// bounds staleness for read-heavy traffic.
type FamilyTreeService interface {
	GetFamilyTree(artifactID string) (*domain.FamilyTree, error)
	GetLineage(artifactID string) ([]*domain.LineageEntry, error)
}

type familyTreeService struct {
	versionRepo repository.VersionRepository
	branchRepo  repository.BranchRepository
	cache       cache.Service
	ttl         time.Duration
}

// NewFamilyTreeService creates a new FamilyTreeService
func NewFamilyTreeService(
	versionRepo repository.VersionRepository,
	branchRepo repository.BranchRepository,
	cacheSvc cache.Service,
	ttl time.Duration,
) FamilyTreeService {
	if ttl <= 0 {
		ttl = cache.TTLTree
	}
	return &familyTreeService{
		versionRepo: versionRepo,
		branchRepo:  branchRepo,
		cache:       cacheSvc,
		ttl:         ttl,
	}
}

// GetFamilyTree returns the cached tree when present; otherwise it rebuilds
// from the store and caches the result before returning.
func (s *familyTreeService) GetFamilyTree(artifactID string) (*domain.FamilyTree, error) {
	key := cache.TreeKey(artifactID)

	if s.cache != nil {
		var cached domain.FamilyTree
		err := s.cache.Get(context.Background(), key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.GetLogger().Warn().Err(err).Str("artifact_id", artifactID).Msg("tree cache read failed")
		}
	}

	tree, err := s.buildTree(artifactID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(context.Background(), key, tree, s.ttl); err != nil {
			logger.GetLogger().Warn().Err(err).Str("artifact_id", artifactID).Msg("tree cache write failed")
		}
	}
	return tree, nil
}

func (s *familyTreeService) buildTree(artifactID string) (*domain.FamilyTree, error) {
	versions, err := s.versionRepo.FindByArtifactID(artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load versions: %w", err)
	}
	branches, err := s.branchRepo.FindByArtifactID(artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}

	// versions that at least one branch diverged from
	branchPoints := make(map[string]struct{}, len(branches))
	for _, b := range branches {
		branchPoints[b.CreatedFromVersionID] = struct{}{}
	}

	tree := &domain.FamilyTree{
		ArtifactID:    artifactID,
		Nodes:         make([]*domain.TreeNode, 0, len(versions)),
		Edges:         make([]*domain.TreeEdge, 0, len(versions)),
		TotalVersions: len(versions),
		TotalBranches: len(branches),
	}

	for _, v := range versions {
		kind := domain.NodeKindVersion
		if _, ok := branchPoints[v.ID]; ok {
			kind = domain.NodeKindBranchPoint
		}

		y := 0
		if v.BranchID != nil {
			y = treeBranchRowY
		}

		tree.Nodes = append(tree.Nodes, &domain.TreeNode{
			ID:   v.ID,
			Kind: kind,
			X:    v.VersionNumber * treeNodeSpacingX,
			Y:    y,
			Data: v,
		})

		if v.ParentVersionID != nil {
			edgeKind := domain.EdgeKindDefault
			if v.BranchID != nil {
				edgeKind = domain.EdgeKindBranch
			}
			tree.Edges = append(tree.Edges, &domain.TreeEdge{
				ID:     fmt.Sprintf("e-%s-%s", *v.ParentVersionID, v.ID),
				Source: *v.ParentVersionID,
				Target: v.ID,
				Kind:   edgeKind,
			})
		}
	}

	return tree, nil
}

// GetLineage walks the version DAG breadth-first from the root and reports
// each version's depth and children. Versions unreachable from the root keep
// level 0; that only happens on corrupted parent chains and is surfaced in
// the log rather than repaired here.
func (s *familyTreeService) GetLineage(artifactID string) ([]*domain.LineageEntry, error) {
	versions, err := s.versionRepo.FindByArtifactID(artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load versions: %w", err)
	}

	children := make(map[string][]string, len(versions))
	var rootID string
	for _, v := range versions {
		if v.ParentVersionID == nil {
			rootID = v.ID
			continue
		}
		children[*v.ParentVersionID] = append(children[*v.ParentVersionID], v.ID)
	}

	levels := make(map[string]int, len(versions))
	if rootID != "" {
		queue := []string{rootID}
		levels[rootID] = 0
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, child := range children[current] {
				levels[child] = levels[current] + 1
				queue = append(queue, child)
			}
		}
	}

	entries := make([]*domain.LineageEntry, 0, len(versions))
	unreachable := 0
	for _, v := range versions {
		level, ok := levels[v.ID]
		if !ok && v.ID != rootID {
			unreachable++
		}
		entries = append(entries, &domain.LineageEntry{
			VersionID: v.ID,
			Level:     level,
			Children:  append([]string(nil), children[v.ID]...),
		})
	}
	if unreachable > 0 {
		logger.GetLogger().Warn().
			Str("artifact_id", artifactID).
			Int("unreachable", unreachable).
			Msg("lineage: versions unreachable from root")
	}

	return entries, nil
}
