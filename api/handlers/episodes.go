// ABOUTME: HTTP handlers for the episode endpoints
// ABOUTME: Thin layer over the episode aggregation service

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daysgrimm-api/core/episodes"
)

// EpisodeHandler handles episode listing and health requests.
type EpisodeHandler struct {
	service *episodes.Service
}

// NewEpisodeHandler creates an episode handler.
func NewEpisodeHandler(service *episodes.Service) *EpisodeHandler {
	return &EpisodeHandler{service: service}
}

// List handles GET /api/episodes. The response body is the episode array
// itself, which is what the site frontend consumes.
func (h *EpisodeHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	eps, err := h.service.Episodes(c.Request.Context(), limit)
	if err != nil {
		c.JSON(statusForError(err), errorBody(err, "episodes"))
		return
	}

	c.JSON(http.StatusOK, eps)
}

// Health handles GET /api/episodes/health, reporting cache state without
// touching the upstream API.
func (h *EpisodeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Health())
}
