package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/pkg/cache"
)

func strptr(s string) *string { return &s }

func treeFixture() ([]*domain.Version, []*domain.Branch) {
	versions := []*domain.Version{
		{ID: "v-1", ArtifactID: "art-1", VersionNumber: 1},
		{ID: "v-2", ArtifactID: "art-1", VersionNumber: 2, ParentVersionID: strptr("v-1")},
		{ID: "v-3", ArtifactID: "art-1", VersionNumber: 3, ParentVersionID: strptr("v-2"), BranchID: strptr("br-1")},
	}
	branches := []*domain.Branch{
		{ID: "br-1", ArtifactID: "art-1", Name: "alt", CreatedFromVersionID: "v-2"},
	}
	return versions, branches
}

func TestGetFamilyTree_BuildsNodesAndEdges(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	branchRepo := new(mockBranchRepo)
	svc := NewFamilyTreeService(versionRepo, branchRepo, cache.NewMemoryService(), time.Minute)

	versions, branches := treeFixture()
	versionRepo.On("FindByArtifactID", "art-1").Return(versions, nil)
	branchRepo.On("FindByArtifactID", "art-1").Return(branches, nil)

	tree, err := svc.GetFamilyTree("art-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, tree.TotalVersions)
	assert.Equal(t, 1, tree.TotalBranches)
	assert.Len(t, tree.Nodes, 3)
	assert.Len(t, tree.Edges, 2)

	// v-2 is a branch point, the rest are plain versions
	byID := map[string]*domain.TreeNode{}
	for _, n := range tree.Nodes {
		byID[n.ID] = n
	}
	assert.Equal(t, domain.NodeKindVersion, byID["v-1"].Kind)
	assert.Equal(t, domain.NodeKindBranchPoint, byID["v-2"].Kind)
	assert.Equal(t, domain.NodeKindVersion, byID["v-3"].Kind)

	// positions follow version number; branch membership shifts the row
	assert.Equal(t, 180, byID["v-1"].X)
	assert.Equal(t, 360, byID["v-2"].X)
	assert.Equal(t, 0, byID["v-2"].Y)
	assert.Equal(t, 120, byID["v-3"].Y)

	// the edge into the branch version is branch-typed
	var branchEdges, defaultEdges int
	for _, e := range tree.Edges {
		switch e.Kind {
		case domain.EdgeKindBranch:
			branchEdges++
		case domain.EdgeKindDefault:
			defaultEdges++
		}
	}
	assert.Equal(t, 1, branchEdges)
	assert.Equal(t, 1, defaultEdges)
}

func TestGetFamilyTree_CacheHitSkipsStore(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	branchRepo := new(mockBranchRepo)
	svc := NewFamilyTreeService(versionRepo, branchRepo, cache.NewMemoryService(), time.Minute)

	versions, branches := treeFixture()
	versionRepo.On("FindByArtifactID", "art-1").Return(versions, nil).Once()
	branchRepo.On("FindByArtifactID", "art-1").Return(branches, nil).Once()

	first, err := svc.GetFamilyTree("art-1")
	assert.NoError(t, err)

	// second call must be served from cache; the Once() expectations above
	// fail the test if the repositories are hit again
	second, err := svc.GetFamilyTree("art-1")
	assert.NoError(t, err)
	assert.Equal(t, first.TotalVersions, second.TotalVersions)
	assert.Len(t, second.Nodes, len(first.Nodes))

	versionRepo.AssertExpectations(t)
	branchRepo.AssertExpectations(t)
}

func TestGetFamilyTree_TTLExpiryRebuilds(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	branchRepo := new(mockBranchRepo)

	now := time.Now()
	clock := func() time.Time { return now }
	svc := NewFamilyTreeService(versionRepo, branchRepo, cache.NewMemoryServiceWithClock(func() time.Time { return clock() }), time.Minute)

	versions, branches := treeFixture()
	versionRepo.On("FindByArtifactID", "art-1").Return(versions, nil).Twice()
	branchRepo.On("FindByArtifactID", "art-1").Return(branches, nil).Twice()

	_, err := svc.GetFamilyTree("art-1")
	assert.NoError(t, err)

	// advance past the TTL; the next read must rebuild
	later := now.Add(2 * time.Minute)
	clock = func() time.Time { return later }

	_, err = svc.GetFamilyTree("art-1")
	assert.NoError(t, err)
	versionRepo.AssertExpectations(t)
}

func TestGetLineage_LevelsAndChildren(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	svc := NewFamilyTreeService(versionRepo, new(mockBranchRepo), cache.NewMemoryService(), time.Minute)

	versions := []*domain.Version{
		{ID: "v-1", VersionNumber: 1},
		{ID: "v-2", VersionNumber: 2, ParentVersionID: strptr("v-1")},
		{ID: "v-3", VersionNumber: 3, ParentVersionID: strptr("v-1")},
		{ID: "v-4", VersionNumber: 4, ParentVersionID: strptr("v-2")},
	}
	versionRepo.On("FindByArtifactID", "art-1").Return(versions, nil)

	lineage, err := svc.GetLineage("art-1")

	assert.NoError(t, err)
	byID := map[string]*domain.LineageEntry{}
	for _, e := range lineage {
		byID[e.VersionID] = e
	}
	assert.Equal(t, 0, byID["v-1"].Level)
	assert.Equal(t, 1, byID["v-2"].Level)
	assert.Equal(t, 1, byID["v-3"].Level)
	assert.Equal(t, 2, byID["v-4"].Level)
	assert.ElementsMatch(t, []string{"v-2", "v-3"}, byID["v-1"].Children)
	assert.Empty(t, byID["v-4"].Children)
}

func TestGetLineage_UnreachableDefaultsToZero(t *testing.T) {
	versionRepo := new(mockVersionRepo)
	svc := NewFamilyTreeService(versionRepo, new(mockBranchRepo), cache.NewMemoryService(), time.Minute)

	// v-9's parent chain never reaches the root (corrupted data)
	versions := []*domain.Version{
		{ID: "v-1", VersionNumber: 1},
		{ID: "v-2", VersionNumber: 2, ParentVersionID: strptr("v-1")},
		{ID: "v-9", VersionNumber: 9, ParentVersionID: strptr("v-ghost")},
	}
	versionRepo.On("FindByArtifactID", "art-1").Return(versions, nil)

	lineage, err := svc.GetLineage("art-1")

	assert.NoError(t, err)
	byID := map[string]*domain.LineageEntry{}
	for _, e := range lineage {
		byID[e.VersionID] = e
	}
	assert.Equal(t, 0, byID["v-9"].Level)
	assert.Equal(t, 1, byID["v-2"].Level)
}
