// Package core contains the business logic for the Days Grimm site API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Episode, Post)
// - episodes: Episode aggregation over the video platform
// - posts: Blog post aggregation over the community platform
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "daysgrimm-api/core/interfaces"
//	    "daysgrimm-api/core/posts"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	postService := posts.NewService(deps, posts.Config{Subreddit: "TheDaysGrimm"})
//
//	// Fetch posts
//	result, err := postService.Posts(ctx, posts.Query{})
//
package core
