package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/middleware"
	"github.com/artloom/artloom-backend/internal/service"
)

// BranchHandler handles branch API endpoints
type BranchHandler struct {
	branchSvc service.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchSvc service.BranchService) *BranchHandler {
	return &BranchHandler{branchSvc: branchSvc}
}

type createBranchRequest struct {
	FromVersionID string `json:"from_version_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
}

// ListBranches handles GET /api/v1/artifacts/:id/branches
// @Summary      List branches
// @Tags         branches
// @Produce      json
// @Param        id path string true "artifact id"
// @Success      200 {object} common.APIResponse
// @Router       /artifacts/{id}/branches [get]
func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.branchSvc.ListBranches(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, branches, &common.Meta{
		ArtifactID: c.Param("id"),
		Total:      int64(len(branches)),
	})
}

// CreateBranch handles POST /api/v1/artifacts/:id/branches
// @Summary      Create branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "artifact id"
// @Param        request body createBranchRequest true "branch details"
// @Success      201 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /artifacts/{id}/branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req createBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	branch, err := h.branchSvc.CreateBranch(
		middleware.GetUserID(c),
		c.Param("id"),
		req.FromVersionID,
		req.Name,
		req.Description,
	)
	if err != nil {
		serviceError(c, err)
		return
	}
	common.CreatedResponse(c, branch)
}

type mergeBranchRequest struct {
	MergeVersionID string `json:"merge_version_id" binding:"required"`
}

// MergeBranch handles PUT /api/v1/branches/:id/merge
// @Summary      Merge branch
// @Description  Bookkeeping only; marks the branch reconciled into a version
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "branch id"
// @Param        request body mergeBranchRequest true "merge target"
// @Success      200 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /branches/{id}/merge [put]
func (h *BranchHandler) MergeBranch(c *gin.Context) {
	var req mergeBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	branch, err := h.branchSvc.MergeBranch(c.Param("id"), req.MergeVersionID)
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, branch, nil)
}

// DeleteBranch handles DELETE /api/v1/branches/:id
// @Summary      Delete branch
// @Description  Removes the pointer only; versions on the branch survive
// @Tags         branches
// @Produce      json
// @Param        id path string true "branch id"
// @Success      200 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /branches/{id} [delete]
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	if err := h.branchSvc.DeleteBranch(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
