// ABOUTME: Episode aggregation service: faceted discovery, classification, caching
// ABOUTME: Provides business logic for the episodes endpoints independent of HTTP

package episodes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"daysgrimm-api/core/domain"
	coreerrors "daysgrimm-api/core/errors"
	"daysgrimm-api/core/interfaces"
	"golang.org/x/sync/errgroup"
)

const (
	cachePrefix = "episodes"

	// searchWindow bounds candidate discovery to recent content
	searchWindow = 10 * 7 * 24 * time.Hour

	// facetMaxResults is the per-facet search page size
	facetMaxResults = 25

	// upcomingGrace is how long past its scheduled time a cached upcoming
	// item may sit before the cache is refreshed early
	upcomingGrace = 5 * time.Minute

	// Retention caps for the cached list
	maxRetained         = 15
	maxRecentRetained   = 12
	maxUpcomingRetained = 3
)

// defaultSearchNames are the display-name variants tried when no channel
// identifier or handle is configured.
var defaultSearchNames = []string{
	"The Days Grimm Podcast",
	"The Days Grimm",
}

// searchFacets works around single-query under-return: medium and long
// duration classes, plus upcoming and live events which may carry no
// duration facet at all.
var searchFacets = []SearchFacet{
	{Duration: "medium"},
	{Duration: "long"},
	{EventType: "upcoming"},
	{EventType: "live"},
}

// Config holds the episode aggregator configuration
type Config struct {
	ChannelID     string
	ChannelCustom string
	ChannelURL    string

	// SearchNames overrides the display-name fallback queries
	SearchNames []string

	// CacheTTL is how long a cached list is considered fresh
	CacheTTL time.Duration

	// FallbackTTL is how long a stale list may still be served on upstream failure
	FallbackTTL time.Duration
}

// Service aggregates channel videos into the served episode list
type Service struct {
	deps   interfaces.Dependencies
	source VideoSource
	cfg    Config
	now    func() time.Time
}

/// cachedList is the cache entry payload: fetch time plus the computed list
type cachedList struct {
	FetchedAt int64            `json:"fetchedAt"`
	Episodes  []domain.Episode `json:"episodes"`
}

// HealthReport describes the episode cache state
type HealthReport struct {
	Status        string `json:"status"`
	CacheStatus   string `json:"cacheStatus"`
	CacheAge      string `json:"cacheAge"`
	EpisodeCount  int    `json:"episodeCount"`
	ShouldRefresh bool   `json:"shouldRefresh"`
}

// NewService creates a new episode aggregation service
func NewService(deps interfaces.Dependencies, source VideoSource, cfg Config) *Service {
	if len(cfg.SearchNames) == 0 {
		cfg.SearchNames = defaultSearchNames
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 12 * time.Hour
	}
	if cfg.FallbackTTL == 0 {
		cfg.FallbackTTL = 24 * time.Hour
	}
	return &Service{
		deps:   deps,
		source: source,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Episodes returns the aggregated episode list, newest first. limit caps the
// returned array only; zero or negative means no cap.
func (s *Service) Episodes(ctx context.Context, limit int) ([]domain.Episode, error) {
	key := s.cacheKey()

	var cached cachedList
	haveCache := false
	if s.deps.Cache != nil {
		haveCache = s.deps.Cache.Get(cachePrefix, key, &cached) == nil
	}

	now := s.now()
	if haveCache && !s.shouldRefresh(cached, now) {
		s.logInfo("Serving episodes from cache", map[string]interface{}{
			"count": len(cached.Episodes),
		})
		return capList(cached.Episodes, limit), nil
	}

	episodes, err := s.refresh(ctx, now)
	if err != nil {
		if haveCache && now.Unix()-cached.FetchedAt < int64(s.cfg.FallbackTTL.Seconds()) {
			s.logWarn("Serving fallback cache due to API error", map[string]interface{}{
				"error": err.Error(),
				"count": len(cached.Episodes),
			})
			return capList(cached.Episodes, limit), nil
		}
		return nil, err
	}

	return capList(episodes, limit), nil
}

// Health reports the cache state for the episodes health endpoint
func (s *Service) Health() HealthReport {
	report := HealthReport{
		Status:        "healthy",
		CacheStatus:   "empty",
		CacheAge:      "N/A",
		ShouldRefresh: true,
	}

	if s.deps.Cache == nil {
		return report
	}

	var cached cachedList
	if err := s.deps.Cache.Get(cachePrefix, s.cacheKey(), &cached); err != nil {
		return report
	}

	now := s.now()
	ageHours := (now.Unix() - cached.FetchedAt) / 3600

	report.CacheStatus = "valid"
	report.CacheAge = fmt.Sprintf("%d hours", ageHours)
	report.EpisodeCount = len(cached.Episodes)
	report.ShouldRefresh = s.shouldRefresh(cached, now)
	return report
}

// shouldRefresh reports whether the cached list is too old, or holds an
// upcoming item whose scheduled time has passed by more than the grace period
func (s *Service) shouldRefresh(cached cachedList, now time.Time) bool {
	if now.Unix()-cached.FetchedAt >= int64(s.cfg.CacheTTL.Seconds()) {
		return true
	}
	cutoff := now.Add(-upcomingGrace).Unix()
	for _, ep := range cached.Episodes {
		if ep.IsUpcoming && ep.SortTimestamp > 0 && ep.SortTimestamp <= cutoff {
			return true
		}
	}
	return false
}

// refresh runs the full aggregation pipeline and stores the result
func (s *Service) refresh(ctx context.Context, now time.Time) ([]domain.Episode, error) {
	if s.source == nil {
		return nil, &coreerrors.ConfigError{
			Key:     "YOUTUBE_API_KEY",
			Message: "episode source is not configured",
		}
	}

	s.logInfo("Fetching fresh episodes", nil)

	channelID, err := s.resolveChannelID(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.discoverCandidates(ctx, channelID, now)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no videos found for channel %s", channelID)
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.VideoID
	}

	details, err := s.source.VideoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve the merged candidate order for tie-breaking
	orderIndex := make(map[string]int, len(ids))
	for i, id := range ids {
		orderIndex[id] = i
	}

	episodes := make([]domain.Episode, 0, len(details))
	for _, video := range details {
		order, ok := orderIndex[video.ID]
		if !ok {
			order = len(ids)
		}
		ep := Classify(video, order, now)
		if ep.IsShort {
			continue
		}
		episodes = append(episodes, ep)
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		if episodes[i].SortTimestamp != episodes[j].SortTimestamp {
			return episodes[i].SortTimestamp > episodes[j].SortTimestamp
		}
		return episodes[i].Order < episodes[j].Order
	})

	episodes = retain(episodes)
	MarkFeatured(episodes)

	if s.deps.Cache != nil {
		entry := cachedList{FetchedAt: now.Unix(), Episodes: episodes}
		if err := s.deps.Cache.Set(cachePrefix, s.cacheKey(), entry, s.cfg.FallbackTTL); err != nil {
			s.logWarn("Failed to cache episodes", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.logInfo("Cached fresh episodes", map[string]interface{}{
		"count": len(episodes),
	})
	return episodes, nil
}

// discoverCandidates runs all facet searches concurrently and merges the
// results, deduplicated and sorted by published time descending. Individual
// facet failures are tolerated as long as one facet succeeds.
func (s *Service) discoverCandidates(ctx context.Context, channelID string, now time.Time) ([]Candidate, error) {
	publishedAfter := now.Add(-searchWindow)

	results := make([][]Candidate, len(searchFacets))
	facetErrs := make([]error, len(searchFacets))

	g, gctx := errgroup.WithContext(ctx)
	for i, facet := range searchFacets {
		i, facet := i, facet
		g.Go(func() error {
			candidates, err := s.source.SearchVideos(gctx, channelID, facet, publishedAfter, facetMaxResults)
			if err != nil {
				facetErrs[i] = err
				s.logWarn("Facet search failed", map[string]interface{}{
					"duration":  facet.Duration,
					"eventType": facet.EventType,
					"error":     err.Error(),
				})
				return nil
			}
			results[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	succeeded := false
	for i := range searchFacets {
		if facetErrs[i] == nil {
			succeeded = true
			break
		}
	}
	if !succeeded {
		return nil, facetErrs[0]
	}

	seen := make(map[string]bool)
	var merged []Candidate
	for _, list := range results {
		for _, c := range list {
			if c.VideoID == "" || seen[c.VideoID] {
				continue
			}
			seen[c.VideoID] = true
			merged = append(merged, c)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	return merged, nil
}

// retain caps the computed list before caching: all of it when small enough,
// otherwise a few upcoming plus the most recent published items
func retain(episodes []domain.Episode) []domain.Episode {
	if len(episodes) <= maxRetained {
		return episodes
	}

	kept := make([]domain.Episode, 0, maxRetained)
	upcoming, recent := 0, 0
	for _, ep := range episodes {
		if len(kept) == maxRetained {
			break
		}
		if ep.IsUpcoming {
			if upcoming == maxUpcomingRetained {
				continue
			}
			upcoming++
		} else {
			if recent == maxRecentRetained {
				continue
			}
			recent++
		}
		kept = append(kept, ep)
	}
	return kept
}

func capList(episodes []domain.Episode, limit int) []domain.Episode {
	if limit > 0 && limit < len(episodes) {
		return episodes[:limit]
	}
	return episodes
}

func (s *Service) cacheKey() string {
	for _, id := range []string{s.cfg.ChannelID, s.cfg.ChannelCustom, s.cfg.ChannelURL} {
		if id != "" {
			return strings.ToLower(id)
		}
	}
	return "default"
}

func (s *Service) logInfo(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}
