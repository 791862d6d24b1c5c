// ABOUTME: HTTP handler for the community blog endpoint
// ABOUTME: Maps query overrides onto the post aggregation service

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daysgrimm-api/core/posts"
)

// BlogHandler handles blog post requests backed by the community platform.
type BlogHandler struct {
	service *posts.Service
}

// NewBlogHandler creates a blog handler.
func NewBlogHandler(service *posts.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// List handles GET /api/blog/reddit. A flair or author parameter that is
// present but empty disables that filter, which is distinct from the
// parameter being absent (use the configured default).
func (h *BlogHandler) List(c *gin.Context) {
	query := posts.Query{}

	if flair, ok := c.GetQuery("flair"); ok {
		query.Flair = &flair
	}
	if author, ok := c.GetQuery("author"); ok {
		query.Author = &author
	}
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			query.Limit = parsed
		}
	}
	debugRaw := c.Query("debug")
	query.Debug = debugRaw == "1" || debugRaw == "true"

	result, err := h.service.Posts(c.Request.Context(), query)
	if err != nil {
		body := errorBody(err, "posts")
		if query.Debug {
			body["debug"] = gin.H{
				"flair":  c.Query("flair"),
				"author": c.Query("author"),
				"limit":  query.Limit,
			}
		}
		c.JSON(statusForError(err), body)
		return
	}

	maxAge := int(h.service.CacheTTL().Seconds())
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))

	body := gin.H{"posts": result.Posts}
	if result.Debug != nil {
		body["debug"] = result.Debug
	}
	c.JSON(http.StatusOK, body)
}
