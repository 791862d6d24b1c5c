// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to status codes and legacy JSON error bodies

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daysgrimm-api/core/errors"
)

// statusForError maps domain errors onto HTTP status codes. External API
// statuses propagate when they are meaningful to the caller (403 blocks
// especially); everything else collapses to 500.
func statusForError(err error) int {
	switch {
	case errors.IsConfig(err):
		return http.StatusBadRequest
	case errors.IsExternalAPI(err):
		if apiErr, ok := errors.AsExternalAPI(err); ok {
			if apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusTooManyRequests {
				return apiErr.StatusCode
			}
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorCategory names the failure class in the error payload.
func errorCategory(err error) string {
	switch {
	case errors.IsConfig(err):
		return "configuration_error"
	case errors.IsResolution(err):
		return "resolution_error"
	case errors.IsParse(err):
		return "parse_error"
	case errors.IsExternalAPI(err):
		return "upstream_error"
	default:
		return "internal_error"
	}
}

// errorBody builds the legacy error payload. dataField ("episodes" or
// "posts") is always present as an empty array so callers never null-check.
func errorBody(err error, dataField string) gin.H {
	return gin.H{
		"error":   errorCategory(err),
		"message": err.Error(),
		dataField: []struct{}{},
	}
}
