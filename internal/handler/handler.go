// Package handler exposes the version graph, branch, diff, tree and fork
// services over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artloom/artloom-backend/internal/common"
)

// serviceError maps the service error taxonomy onto HTTP responses. Store
// failures fall through as 500 with the underlying message for observability.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", err)
	case errors.Is(err, common.ErrArtifactNotFound),
		errors.Is(err, common.ErrVersionNotFound),
		errors.Is(err, common.ErrBranchNotFound),
		errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Resource not found", err)
	case errors.Is(err, common.ErrHasChildren):
		common.ErrorResponse(c, http.StatusConflict, "Cannot delete version with children", err)
	case errors.Is(err, common.ErrVersionMismatch),
		errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal error", err)
	}
}
