package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/middleware"
	"github.com/artloom/artloom-backend/internal/service"
)

// ForkHandler handles fork and lineage endpoints
type ForkHandler struct {
	forkSvc service.ForkService
}

// NewForkHandler creates a new ForkHandler
func NewForkHandler(forkSvc service.ForkService) *ForkHandler {
	return &ForkHandler{forkSvc: forkSvc}
}

type forkRequest struct {
	Name     string                 `json:"name"`
	Prompt   string                 `json:"prompt" binding:"required"`
	ImageRef string                 `json:"image_ref"`
	Settings map[string]interface{} `json:"settings"`
}

// ForkArtifact handles POST /api/v1/artifacts/:id/fork
// @Summary      Fork artifact
// @Description  Creates a new artifact lineage rooted in this artifact
// @Tags         forks
// @Accept       json
// @Produce      json
// @Param        id path string true "artifact id"
// @Param        request body forkRequest true "fork content"
// @Success      201 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /artifacts/{id}/fork [post]
func (h *ForkHandler) ForkArtifact(c *gin.Context) {
	var req forkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.forkSvc.ForkArtifact(middleware.GetUserID(c), c.Param("id"), service.ForkArtifactInput{
		Name:     req.Name,
		Prompt:   req.Prompt,
		ImageRef: req.ImageRef,
		Settings: req.Settings,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	common.CreatedResponse(c, result)
}

// GetForkTree handles GET /api/v1/artifacts/:id/fork-tree
// @Summary      Fork tree
// @Description  Full descendant tree from the lineage root
// @Tags         forks
// @Produce      json
// @Param        id path string true "artifact id"
// @Success      200 {object} common.APIResponse
// @Router       /artifacts/{id}/fork-tree [get]
func (h *ForkHandler) GetForkTree(c *gin.Context) {
	tree, err := h.forkSvc.GetForkTree(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, tree, nil)
}

// GetRemixCredits handles GET /api/v1/artifacts/:id/remix-credits
// @Summary      Remix credits
// @Description  Ordered attribution chain from the lineage root
// @Tags         forks
// @Produce      json
// @Param        id path string true "artifact id"
// @Success      200 {object} common.APIResponse
// @Router       /artifacts/{id}/remix-credits [get]
func (h *ForkHandler) GetRemixCredits(c *gin.Context) {
	credits, err := h.forkSvc.GetRemixCredits(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, credits, nil)
}
