package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/middleware"
	"github.com/artloom/artloom-backend/internal/service"
)

// ArtifactHandler handles artifact API endpoints
type ArtifactHandler struct {
	artifactSvc service.ArtifactService
}

// NewArtifactHandler creates a new ArtifactHandler
func NewArtifactHandler(artifactSvc service.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifactSvc: artifactSvc}
}

type createArtifactRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Prompt   string                 `json:"prompt"`
	ImageRef string                 `json:"image_ref"`
	Settings map[string]interface{} `json:"settings"`
}

// CreateArtifact handles POST /api/v1/artifacts
// @Summary      Create artifact
// @Description  Creates a new artifact and seeds its first version
// @Tags         artifacts
// @Accept       json
// @Produce      json
// @Param        request body createArtifactRequest true "artifact content"
// @Success      201 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /artifacts [post]
func (h *ArtifactHandler) CreateArtifact(c *gin.Context) {
	var req createArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	artifact, version, err := h.artifactSvc.CreateArtifact(middleware.GetUserID(c), service.CreateArtifactInput{
		Name:     req.Name,
		Prompt:   req.Prompt,
		ImageRef: req.ImageRef,
		Settings: req.Settings,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	common.CreatedResponse(c, gin.H{
		"artifact": artifact,
		"version":  version,
	})
}

// GetArtifact handles GET /api/v1/artifacts/:id
// @Summary      Get artifact
// @Tags         artifacts
// @Produce      json
// @Param        id path string true "artifact id"
// @Success      200 {object} common.APIResponse
// @Router       /artifacts/{id} [get]
func (h *ArtifactHandler) GetArtifact(c *gin.Context) {
	artifact, err := h.artifactSvc.GetArtifact(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, artifact, nil)
}
