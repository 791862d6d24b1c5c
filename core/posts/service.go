// ABOUTME: Blog post aggregation service over the community platform
// ABOUTME: Runs an ordered strategy pipeline with TTL caching and stale fallback

package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"daysgrimm-api/core/domain"
	coreerrors "daysgrimm-api/core/errors"
	"daysgrimm-api/core/interfaces"
)

const (
	cachePrefix = "blog"

	// DefaultLimit applies when the caller does not ask for a count.
	DefaultLimit = 6
	// MaxLimit caps any requested count.
	MaxLimit = 25

	sourceSearch = "search"
	sourceFeed   = "feed"
	sourceCache  = "cache"

	sampleSize = 5
)

// Config carries the post aggregator settings.
type Config struct {
	Subreddit     string
	RequiredFlair string
	AllowedAuthor string
	CacheTTL      time.Duration
	FallbackTTL   time.Duration
}

// Query is one aggregation request. Flair and Author are nil to use the
// configured defaults; a non-nil empty string disables the filter.
type Query struct {
	Flair  *string
	Author *string
	Limit  int
	Debug  bool
}

// fetchQuery is a Query with defaults resolved, handed to strategies.
type fetchQuery struct {
	Flair  string
	Author string
	Limit  int
}

// SampleEntry is a trimmed raw listing entry included in debug output.
type SampleEntry struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Flair  *string `json:"flair"`
}

// DebugInfo describes how a result was produced, for troubleshooting filter
// and blocking issues without log access.
type DebugInfo struct {
	Subreddit       string        `json:"subreddit"`
	Flair           string        `json:"flair"`
	Author          string        `json:"author"`
	Limit           int           `json:"limit"`
	Source          string        `json:"source"`
	UpstreamStatus  int           `json:"upstreamStatus,omitempty"`
	TotalCandidates int           `json:"totalCandidates"`
	FilteredCount   int           `json:"filteredCount"`
	LookedLikeHTML  bool          `json:"lookedLikeHtml,omitempty"`
	Sample          []SampleEntry `json:"sample,omitempty"`
}

// Result is the outcome of one aggregation request. Debug is non-nil only
// when the query asked for it.
type Result struct {
	Posts []domain.Post
	Debug *DebugInfo
}

// fetchMeta is what a strategy reports about its attempt, feeding DebugInfo.
type fetchMeta struct {
	Source          string
	UpstreamStatus  int
	TotalCandidates int
	LookedLikeHTML  bool
	Sample          []SampleEntry
}

// fetchStrategy is one way of getting posts out of the platform. Strategies
// are tried in order until one yields posts.
type fetchStrategy interface {
	name() string
	fetch(ctx context.Context, q fetchQuery) ([]domain.Post, fetchMeta, error)
}

// cachedPosts is the cache payload. FetchedAt lets the service distinguish a
// fresh entry from a stale one kept around for upstream-failure fallback.
type cachedPosts struct {
	FetchedAt int64         `json:"fetchedAt"`
	Source    string        `json:"source"`
	Posts     []domain.Post `json:"posts"`
}

// Service aggregates blog posts from the community platform.
type Service struct {
	deps       interfaces.Dependencies
	cfg        Config
	strategies []fetchStrategy

	// now is swappable for tests
	now func() time.Time
}

// NewService creates a post aggregation service.
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 6 * time.Hour
	}
	if cfg.FallbackTTL < cfg.CacheTTL {
		cfg.FallbackTTL = 24 * time.Hour
	}
	return &Service{
		deps: deps,
		cfg:  cfg,
		strategies: []fetchStrategy{
			&jsonSearchStrategy{client: deps.HTTPClient, subreddit: cfg.Subreddit},
			newFeedStrategy(deps.HTTPClient, cfg.Subreddit),
		},
		now: time.Now,
	}
}

// CacheTTL exposes the configured freshness window, for response cache
// headers.
func (s *Service) CacheTTL() time.Duration {
	return s.cfg.CacheTTL
}

// Posts returns blog posts for the query, serving from cache within the TTL
// and falling back to stale cache when every upstream path fails.
func (s *Service) Posts(ctx context.Context, q Query) (*Result, error) {
	if s.cfg.Subreddit == "" {
		return nil, &coreerrors.ConfigError{
			Key:     "REDDIT_SUBREDDIT",
			Message: "no subreddit configured",
		}
	}

	fq := s.resolveQuery(q)
	key := s.cacheKey(fq)

	var cached cachedPosts
	cacheHit := s.deps.Cache != nil && s.deps.Cache.Get(cachePrefix, key, &cached) == nil
	age := time.Duration(0)
	if cacheHit {
		age = s.now().Sub(time.Unix(cached.FetchedAt, 0))
	}

	if cacheHit && age < s.cfg.CacheTTL {
		return s.result(cached.Posts, fq, q.Debug, fetchMeta{Source: sourceCache}), nil
	}

	posts, meta, err := s.fetchFresh(ctx, fq)
	if err != nil {
		if cacheHit && age < s.cfg.FallbackTTL {
			s.logWarn("serving stale posts after upstream failure", map[string]interface{}{
				"subreddit": s.cfg.Subreddit,
				"age":       age.String(),
				"error":     err.Error(),
			})
			return s.result(cached.Posts, fq, q.Debug, fetchMeta{Source: sourceCache}), nil
		}
		return nil, err
	}

	if len(posts) > fq.Limit {
		posts = posts[:fq.Limit]
	}

	if meta.Source == sourceFeed {
		s.backfillThumbnails(ctx, posts)
	}

	if s.deps.Cache != nil {
		entry := cachedPosts{
			FetchedAt: s.now().Unix(),
			Source:    meta.Source,
			Posts:     posts,
		}
		if setErr := s.deps.Cache.Set(cachePrefix, key, entry, s.cfg.FallbackTTL); setErr != nil {
			s.logWarn("failed to cache posts", map[string]interface{}{"error": setErr.Error()})
		}
	}

	s.logInfo("aggregated blog posts", map[string]interface{}{
		"subreddit": s.cfg.Subreddit,
		"source":    meta.Source,
		"count":     len(posts),
	})
	return s.result(posts, fq, q.Debug, meta), nil
}

// resolveQuery applies configured defaults and clamps the limit.
func (s *Service) resolveQuery(q Query) fetchQuery {
	fq := fetchQuery{
		Flair:  s.cfg.RequiredFlair,
		Author: s.cfg.AllowedAuthor,
		Limit:  q.Limit,
	}
	if q.Flair != nil {
		fq.Flair = *q.Flair
	}
	if q.Author != nil {
		fq.Author = *q.Author
	}
	if fq.Limit <= 0 {
		fq.Limit = DefaultLimit
	}
	if fq.Limit > MaxLimit {
		fq.Limit = MaxLimit
	}
	return fq
}

// fetchFresh runs the strategy pipeline. A strategy that succeeds with zero
// posts does not stop the pipeline, but counts as a success so an empty
// community yields an empty result rather than an error.
func (s *Service) fetchFresh(ctx context.Context, fq fetchQuery) ([]domain.Post, fetchMeta, error) {
	var (
		errs       []error
		anySuccess bool
		emptyMeta  fetchMeta
	)

	for _, strategy := range s.strategies {
		posts, meta, err := strategy.fetch(ctx, fq)
		if err != nil {
			s.logWarn("post fetch strategy failed", map[string]interface{}{
				"strategy": strategy.name(),
				"error":    err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		anySuccess = true
		if len(posts) == 0 {
			emptyMeta = meta
			continue
		}
		return posts, meta, nil
	}

	if anySuccess {
		return []domain.Post{}, emptyMeta, nil
	}
	return nil, fetchMeta{}, combineErrors(errs)
}

// combineErrors folds strategy failures into the error the caller sees. A 403
// anywhere in the chain dominates: it means the platform is blocking this
// server, which is actionable, unlike a generic fetch failure.
func combineErrors(errs []error) error {
	for _, err := range errs {
		if apiErr, ok := coreerrors.AsExternalAPI(err); ok && apiErr.StatusCode == 403 {
			return &coreerrors.ExternalAPIError{
				StatusCode: 403,
				Message:    "the platform is blocking requests from this server",
				API:        "reddit",
				HTMLBody:   apiErr.HTMLBody,
			}
		}
	}
	if len(errs) > 0 {
		return errs[len(errs)-1]
	}
	return &coreerrors.ExternalAPIError{
		StatusCode: 502,
		Message:    "no post source available",
		API:        "reddit",
	}
}

// backfillThumbnails fills in thumbnails for feed-sourced posts by matching
// IDs against one newest-posts listing call. Failures are swallowed: the
// posts are already usable, just unillustrated.
func (s *Service) backfillThumbnails(ctx context.Context, posts []domain.Post) {
	if len(posts) == 0 {
		return
	}

	endpoint := fmt.Sprintf("https://www.reddit.com/r/%s/new.json?limit=%d", s.cfg.Subreddit, MaxLimit)
	resp, err := s.deps.HTTPClient.Get(ctx, endpoint, map[string]string{
		"User-Agent": descriptiveUserAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		s.logWarn("thumbnail backfill request failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	if err != nil || resp.StatusCode() >= 400 {
		return
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return
	}

	thumbs := make(map[string]*string, len(listing.Data.Children))
	flairs := make(map[string]*string, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		raw := child.Data
		thumbs[raw.ID] = resolveThumbnail(raw)
		if flair := flairOf(raw); flair != "" {
			f := flair
			flairs[raw.ID] = &f
		}
	}

	for i := range posts {
		if posts[i].Thumbnail == nil {
			posts[i].Thumbnail = thumbs[posts[i].ID]
		}
		if posts[i].Flair == nil {
			posts[i].Flair = flairs[posts[i].ID]
		}
	}
}

// result assembles the Result, attaching debug info when requested.
func (s *Service) result(posts []domain.Post, fq fetchQuery, debug bool, meta fetchMeta) *Result {
	if posts == nil {
		posts = []domain.Post{}
	}
	res := &Result{Posts: posts}
	if debug {
		res.Debug = &DebugInfo{
			Subreddit:       s.cfg.Subreddit,
			Flair:           fq.Flair,
			Author:          fq.Author,
			Limit:           fq.Limit,
			Source:          meta.Source,
			UpstreamStatus:  meta.UpstreamStatus,
			TotalCandidates: meta.TotalCandidates,
			FilteredCount:   len(posts),
			LookedLikeHTML:  meta.LookedLikeHTML,
			Sample:          meta.Sample,
		}
	}
	return res
}

// cacheKey makes distinct filter combinations cache independently.
func (s *Service) cacheKey(fq fetchQuery) string {
	return strings.ToLower(fmt.Sprintf("%s|%s|%s|%d", s.cfg.Subreddit, fq.Flair, fq.Author, fq.Limit))
}

// appendSample records up to sampleSize raw entries for debug output.
func appendSample(sample []SampleEntry, raw redditPost) []SampleEntry {
	if len(sample) >= sampleSize {
		return sample
	}
	entry := SampleEntry{
		ID:     raw.ID,
		Title:  raw.Title,
		Author: raw.Author,
	}
	if flair := flairOf(raw); flair != "" {
		entry.Flair = &flair
	}
	return append(sample, entry)
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
