package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/handler"
	"github.com/artloom/artloom-backend/internal/middleware"
	"github.com/artloom/artloom-backend/pkg/jwt"
)

// Handlers groups everything the router needs
type Handlers struct {
	Artifact *handler.ArtifactHandler
	Version  *handler.VersionHandler
	Branch   *handler.BranchHandler
	Compare  *handler.CompareHandler
	Tree     *handler.TreeHandler
	Fork     *handler.ForkHandler
}

// Setup configures the v1 API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)

	// Artifacts
	artifacts := api.Group("/artifacts")
	artifacts.POST("", auth, h.Artifact.CreateArtifact)
	artifacts.GET("/:id", h.Artifact.GetArtifact)

	// Versions (nested under artifacts)
	artifacts.GET("/:id/versions", h.Version.ListVersions)
	artifacts.POST("/:id/versions", auth, h.Version.CreateVersion)
	artifacts.POST("/:id/versions/:versionId/restore", auth, h.Version.RestoreVersion)

	// Branches (nested under artifacts)
	artifacts.GET("/:id/branches", h.Branch.ListBranches)
	artifacts.POST("/:id/branches", auth, h.Branch.CreateBranch)

	// Tree, lineage, forks
	artifacts.GET("/:id/tree", h.Tree.GetFamilyTree)
	artifacts.GET("/:id/lineage", h.Tree.GetLineage)
	artifacts.POST("/:id/fork", auth, h.Fork.ForkArtifact)
	artifacts.GET("/:id/fork-tree", h.Fork.GetForkTree)
	artifacts.GET("/:id/remix-credits", h.Fork.GetRemixCredits)

	// Version-scoped operations
	versions := api.Group("/versions")
	versions.GET("/compare", h.Compare.CompareVersions)
	versions.DELETE("/:id", auth, h.Version.DeleteVersion)
	versions.PUT("/:id/star", auth, h.Version.StarVersion)

	// Branch-scoped operations
	branches := api.Group("/branches")
	branches.PUT("/:id/merge", auth, h.Branch.MergeBranch)
	branches.DELETE("/:id", auth, h.Branch.DeleteBranch)
}
