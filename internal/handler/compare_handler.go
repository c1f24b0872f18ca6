package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/common"
	"github.com/artloom/artloom-backend/internal/service"
)

// CompareHandler handles version comparison endpoints
type CompareHandler struct {
	comparisonSvc service.ComparisonService
}

// NewCompareHandler creates a new CompareHandler
func NewCompareHandler(comparisonSvc service.ComparisonService) *CompareHandler {
	return &CompareHandler{comparisonSvc: comparisonSvc}
}

// CompareVersions handles GET /api/v1/versions/compare?a=&b=
// @Summary      Compare versions
// @Description  Word-level prompt diff, settings diff and similarity score
// @Tags         compare
// @Produce      json
// @Param        a query string true "version A id"
// @Param        b query string true "version B id"
// @Success      200 {object} common.APIResponse
// @Router       /versions/compare [get]
func (h *CompareHandler) CompareVersions(c *gin.Context) {
	versionA := c.Query("a")
	versionB := c.Query("b")
	if versionA == "" || versionB == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Both a and b version ids are required", nil)
		return
	}

	result, err := h.comparisonSvc.CompareVersions(versionA, versionB)
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, result, nil)
}
