package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/service"
)

// TreeHandler handles family tree and lineage endpoints
type TreeHandler struct {
	treeSvc service.FamilyTreeService
}

// NewTreeHandler creates a new TreeHandler
func NewTreeHandler(treeSvc service.FamilyTreeService) *TreeHandler {
	return &TreeHandler{treeSvc: treeSvc}
}

// GetFamilyTree handles GET /api/v1/artifacts/:id/tree
// @Summary      Family tree
// @Description  Renderable node/edge graph of versions and branches
// @Tags         tree
// @Produce      json
// @Param        id path string true "artifact id"
// @Success      200 {object} common.APIResponse
// @Router       /artifacts/{id}/tree [get]
func (h *TreeHandler) GetFamilyTree(c *gin.Context) {
	tree, err := h.treeSvc.GetFamilyTree(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, tree, nil)
}

// GetLineage handles GET /api/v1/artifacts/:id/lineage
// @Summary      Version lineage
// @Description  Per-version depth and children from a BFS over the history DAG
// @Tags         tree
// @Produce      json
// @Param        id path string true "artifact id"
// @Success      200 {object} common.APIResponse
// @Router       /artifacts/{id}/lineage [get]
func (h *TreeHandler) GetLineage(c *gin.Context) {
	lineage, err := h.treeSvc.GetLineage(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, lineage, nil)
}
