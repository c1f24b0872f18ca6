package domain

// Family tree node/edge kinds as rendered by the frontend graph view.
const (
	NodeKindVersion     = "version"
	NodeKindBranchPoint = "branchPoint"

	EdgeKindDefault = "default"
	EdgeKindBranch  = "branch"
)

// TreeNode is one version positioned for rendering. Kind is branchPoint when
// at least one branch was created from this version.
type TreeNode struct {
	ID   string   `json:"id"`
	Kind string   `json:"kind"`
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Data *Version `json:"data"`
}

// TreeEdge is one parent→child link in the rendered tree.
type TreeEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// FamilyTree is the renderable graph of one artifact's versions and branches.
// It is never persisted; the family tree service rebuilds it on demand and
// caches it per artifact for a short TTL.
type FamilyTree struct {
	ArtifactID    string      `json:"artifact_id"`
	Nodes         []*TreeNode `json:"nodes"`
	Edges         []*TreeEdge `json:"edges"`
	TotalVersions int         `json:"total_versions"`
	TotalBranches int         `json:"total_branches"`
}

// LineageEntry is one version's depth and children in the history DAG,
// produced by a breadth-first walk from the root.
type LineageEntry struct {
	VersionID string   `json:"version_id"`
	Level     int      `json:"level"`
	Children  []string `json:"children"`
}
