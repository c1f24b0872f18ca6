package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/middleware"
	"github.com/artloom/artloom-backend/internal/service"
)

// VersionHandler handles version graph API endpoints
type VersionHandler struct {
	versionSvc service.VersionService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(versionSvc service.VersionService) *VersionHandler {
	return &VersionHandler{versionSvc: versionSvc}
}

type createVersionRequest struct {
	Prompt            string                 `json:"prompt" binding:"required"`
	ImageRef          string                 `json:"image_ref"`
	Settings          map[string]interface{} `json:"settings"`
	ChangeDescription string                 `json:"change_description"`
	ParentVersionID   *string                `json:"parent_version_id"`
	BranchID          *string                `json:"branch_id"`
}

// ListVersions handles GET /api/v1/artifacts/:id/versions
// @Summary      List versions
// @Description  Versions of an artifact, ascending by version number
// @Tags         versions
// @Produce      json
// @Param        id path string true "artifact id"
// @Success      200 {object} common.APIResponse
// @Router       /artifacts/{id}/versions [get]
func (h *VersionHandler) ListVersions(c *gin.Context) {
	versions, err := h.versionSvc.GetVersions(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, versions, &common.Meta{
		ArtifactID: c.Param("id"),
		Total:      int64(len(versions)),
	})
}

// CreateVersion handles POST /api/v1/artifacts/:id/versions
// @Summary      Create version
// @Tags         versions
// @Accept       json
// @Produce      json
// @Param        id path string true "artifact id"
// @Param        request body createVersionRequest true "version content"
// @Success      201 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /artifacts/{id}/versions [post]
func (h *VersionHandler) CreateVersion(c *gin.Context) {
	var req createVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	version, err := h.versionSvc.CreateVersion(middleware.GetUserID(c), service.CreateVersionInput{
		ArtifactID:        c.Param("id"),
		Prompt:            req.Prompt,
		ImageRef:          req.ImageRef,
		Settings:          req.Settings,
		ChangeDescription: req.ChangeDescription,
		ParentVersionID:   req.ParentVersionID,
		BranchID:          req.BranchID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	common.CreatedResponse(c, version)
}

// RestoreVersion handles POST /api/v1/artifacts/:id/versions/:versionId/restore
// @Summary      Restore version
// @Description  Appends a new head carrying the target version's content
// @Tags         versions
// @Produce      json
// @Param        id path string true "artifact id"
// @Param        versionId path string true "version id"
// @Success      201 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /artifacts/{id}/versions/{versionId}/restore [post]
func (h *VersionHandler) RestoreVersion(c *gin.Context) {
	version, err := h.versionSvc.RestoreVersion(middleware.GetUserID(c), c.Param("id"), c.Param("versionId"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.CreatedResponse(c, version)
}

// DeleteVersion handles DELETE /api/v1/versions/:id
// @Summary      Delete version
// @Description  Only leaf versions can be deleted
// @Tags         versions
// @Produce      json
// @Param        id path string true "version id"
// @Success      200 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /versions/{id} [delete]
func (h *VersionHandler) DeleteVersion(c *gin.Context) {
	if err := h.versionSvc.DeleteVersion(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

type starRequest struct {
	Starred *bool `json:"starred" binding:"required"`
}

// StarVersion handles PUT /api/v1/versions/:id/star
// @Summary      Star or unstar version
// @Description  Starred versions are exempt from pruning
// @Tags         versions
// @Accept       json
// @Produce      json
// @Param        id path string true "version id"
// @Param        request body starRequest true "star flag"
// @Success      200 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /versions/{id}/star [put]
func (h *VersionHandler) StarVersion(c *gin.Context) {
	var req starRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.versionSvc.SetStarred(c.Param("id"), *req.Starred); err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"starred": *req.Starred}, nil)
}
