// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, logging, and the video platform API.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory TTL cache backed by patrickmn/go-cache
// - http/standard: Standard library HTTP client with per-call headers
// - logger/logrusadapter: Structured logger backed by logrus
// - youtube: VideoSource implementation on the YouTube Data API
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include unit tests against the core interfaces
//
// # Cache
//
//	cache := memory.NewMemoryCache(6*time.Hour, 10*time.Minute)
//	err := cache.Set("blog", key, payload, 24*time.Hour)
//	err = cache.Get("blog", key, &payload)
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(15 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com", map[string]string{
//	    "User-Agent": "DaysGrimmSite/1.0",
//	})
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := logrusadapter.New(logrus.New())
//	logger.Info("Serving episodes from cache", map[string]interface{}{
//	    "count": 12,
//	})
package infrastructure
