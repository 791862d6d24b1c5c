// ABOUTME: HTTP router assembly for the promotional site API
// ABOUTME: Wires middleware and routes around the aggregation handlers

package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"daysgrimm-api/api/handlers"
	"daysgrimm-api/api/middleware"
	"daysgrimm-api/core/interfaces"
)

// NewRouter builds the gin engine with CORS, compression, rate limiting, and
// request logging, and registers every API route.
func NewRouter(
	logger interfaces.Logger,
	limiter *rate.Limiter,
	episodeHandler *handlers.EpisodeHandler,
	blogHandler *handlers.BlogHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RateLimit(limiter))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", handlers.Health)
		apiGroup.GET("/episodes", episodeHandler.List)
		apiGroup.GET("/episodes/health", episodeHandler.Health)
		apiGroup.GET("/blog/reddit", blogHandler.List)
	}

	return router
}
