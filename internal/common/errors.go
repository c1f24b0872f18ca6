package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("expired token")

	// Artifact / version graph errors
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrVersionNotFound  = errors.New("version not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrHasChildren      = errors.New("cannot delete version with children")
	ErrVersionMismatch  = errors.New("version does not belong to artifact")
)
