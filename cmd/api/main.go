// ABOUTME: Main entry point for the promotional site API server
// ABOUTME: Wires configuration, infrastructure, services, and graceful shutdown

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"daysgrimm-api/api"
	"daysgrimm-api/api/handlers"
	"daysgrimm-api/core/episodes"
	"daysgrimm-api/core/interfaces"
	"daysgrimm-api/core/posts"
	"daysgrimm-api/infrastructure/cache/memory"
	"daysgrimm-api/infrastructure/http/standard"
	"daysgrimm-api/infrastructure/logger/logrusadapter"
	"daysgrimm-api/infrastructure/youtube"
	"daysgrimm-api/pkg/config"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Log.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	logger := logrusadapter.New(log)

	deps := interfaces.Dependencies{
		Cache:      memory.NewMemoryCache(12*time.Hour, time.Hour),
		HTTPClient: standard.NewStandardHTTPClient(30 * time.Second),
		Logger:     logger,
	}

	ctx := context.Background()

	episodeService := buildEpisodeService(ctx, deps, cfg, log)
	postService := posts.NewService(deps, posts.Config{
		Subreddit:     cfg.Reddit.Subreddit,
		RequiredFlair: cfg.Reddit.RequiredFlair,
		AllowedAuthor: cfg.Reddit.AllowedAuthor,
		CacheTTL:      time.Duration(cfg.Reddit.CacheHours) * time.Hour,
		FallbackTTL:   time.Duration(cfg.Reddit.FallbackCacheHours) * time.Hour,
	})

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	router := api.NewRouter(
		logger,
		limiter,
		handlers.NewEpisodeHandler(episodeService),
		handlers.NewBlogHandler(postService),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
	log.Info("Server stopped")
}

// buildEpisodeService wires the episode aggregator. A missing API key is not
// fatal to the whole process: the blog endpoint still works, and the episode
// endpoint surfaces a configuration error per request.
func buildEpisodeService(ctx context.Context, deps interfaces.Dependencies, cfg *config.Config, log *logrus.Logger) *episodes.Service {
	var source episodes.VideoSource
	ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		log.Warnf("Episode source unavailable: %v", err)
	} else {
		source = ytClient
	}

	return episodes.NewService(deps, source, episodes.Config{
		ChannelID:     cfg.YouTube.ChannelID,
		ChannelCustom: cfg.YouTube.ChannelCustom,
		ChannelURL:    cfg.YouTube.ChannelURL,
		CacheTTL:      time.Duration(cfg.YouTube.CacheHours) * time.Hour,
		FallbackTTL:   time.Duration(cfg.YouTube.FallbackCacheHours) * time.Hour,
	})
}
