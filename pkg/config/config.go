// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, upstream APIs, caching and logging

package config

import (
	"errors"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// YouTube contains episode source configuration
	YouTube YouTubeConfig

	// Reddit contains blog post source configuration
	Reddit RedditConfig

	// Log contains logging configuration
	Log LogConfig

	// RateLimit contains inbound rate limit configuration
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// YouTubeConfig holds the episode source configuration
type YouTubeConfig struct {
	// APIKey is the YouTube Data API key
	APIKey string

	// ChannelID is the explicit channel identifier, preferred when set
	ChannelID string

	// ChannelCustom is the channel's custom handle/username
	ChannelCustom string

	// ChannelURL is a channel URL the handle can be derived from
	// (/@Handle or /c/Name path forms)
	ChannelURL string

	// CacheHours is the episode cache TTL in hours
	CacheHours int

	// FallbackCacheHours is the stale-serve window in hours
	FallbackCacheHours int
}

// RedditConfig holds the blog post source configuration
type RedditConfig struct {
	// Subreddit is the community name, normalized (no r/ prefix)
	Subreddit string

	// RequiredFlair is the default flair substring posts must carry
	RequiredFlair string

	// AllowedAuthor pins posts to a single author when set
	AllowedAuthor string

	// CacheHours is the post cache TTL in hours
	CacheHours int

	// FallbackCacheHours is the stale-serve window in hours
	FallbackCacheHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	// File is the log file path; empty logs to stdout only
	File string
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate allowed per process
	RequestsPerSecond int

	// Burst is the burst size allowed on top of the sustained rate
	Burst int
}

// subredditPrefix matches an optional leading path-style subreddit prefix
var subredditPrefix = regexp.MustCompile(`(?i)^/?r/`)

// NormalizeSubreddit strips a leading /r/ or r/ prefix and surrounding whitespace
func NormalizeSubreddit(raw string) string {
	return strings.TrimSpace(subredditPrefix.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "5000"),
		},
		YouTube: YouTubeConfig{
			APIKey:             os.Getenv("YOUTUBE_API_KEY"),
			ChannelID:          os.Getenv("YOUTUBE_CHANNEL_ID"),
			ChannelCustom:      os.Getenv("YOUTUBE_CHANNEL_CUSTOM"),
			ChannelURL:         os.Getenv("YOUTUBE_CHANNEL_URL"),
			CacheHours:         getEnvAsIntOrDefault("EPISODES_CACHE_HOURS", 12),
			FallbackCacheHours: getEnvAsIntOrDefault("EPISODES_FALLBACK_CACHE_HOURS", 24),
		},
		Reddit: RedditConfig{
			Subreddit:          NormalizeSubreddit(os.Getenv("REDDIT_SUBREDDIT")),
			RequiredFlair:      getEnvOrDefault("REDDIT_REQUIRED_FLAIR", "Official Blog"),
			AllowedAuthor:      os.Getenv("REDDIT_ALLOWED_AUTHOR"),
			CacheHours:         getEnvAsIntOrDefault("BLOG_CACHE_HOURS", 6),
			FallbackCacheHours: getEnvAsIntOrDefault("BLOG_FALLBACK_CACHE_HOURS", 24),
		},
		Log: LogConfig{
			File: os.Getenv("LOG_FILE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsIntOrDefault("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsIntOrDefault("RATE_LIMIT_BURST", 20),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.YouTube.CacheHours < 1 {
		return errors.New("episode cache hours must be at least 1")
	}

	if c.YouTube.FallbackCacheHours < c.YouTube.CacheHours {
		return errors.New("episode fallback cache window cannot be shorter than the cache TTL")
	}

	if c.Reddit.CacheHours < 1 {
		return errors.New("blog cache hours must be at least 1")
	}

	if c.Reddit.FallbackCacheHours < c.Reddit.CacheHours {
		return errors.New("blog fallback cache window cannot be shorter than the cache TTL")
	}

	if c.RateLimit.RequestsPerSecond < 1 {
		return errors.New("rate limit must allow at least 1 request per second")
	}

	return nil
}
