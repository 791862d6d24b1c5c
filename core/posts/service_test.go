package posts

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"daysgrimm-api/core/domain"
	coreerrors "daysgrimm-api/core/errors"
	"daysgrimm-api/core/interfaces"
)

const sampleListing = `{"data":{"children":[
  {"data":{"id":"p1","title":"Weekly update","selftext":"Hello everyone","permalink":"/r/TheDaysGrimm/comments/p1/weekly_update/","url":"https://www.reddit.com/r/TheDaysGrimm/comments/p1/weekly_update/","author":"GrimmHost","created_utc":1741000000,"link_flair_text":"Official Blog","thumbnail":"self"}},
  {"data":{"id":"p2","title":"Cool drawing","selftext":"","permalink":"/r/TheDaysGrimm/comments/p2/cool_drawing/","url":"https://i.example/drawing.png","author":"SomeoneElse","created_utc":1741005000,"link_flair_text":"Fan Art","thumbnail":"https://b.thumbs.example/p2.jpg"}},
  {"data":{"id":"p3","title":"Episode notes","selftext":"Notes inside","permalink":"/r/TheDaysGrimm/comments/p3/episode_notes/","url":"https://www.reddit.com/r/TheDaysGrimm/comments/p3/episode_notes/","author":"GrimmHost","created_utc":1741010000,"link_flair_text":"Official Blog","thumbnail":"https://b.thumbs.example/p3.jpg"}}
]}}`

const backfillAtomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <author><name>/u/GrimmHost</name></author>
    <id>t3_p1</id>
    <link href="https://www.reddit.com/r/TheDaysGrimm/comments/p1/weekly_update/"/>
    <title>Weekly update</title>
    <content type="html">&lt;p&gt;Hello everyone&lt;/p&gt;</content>
    <published>2025-03-04T08:00:00+00:00</published>
  </entry>
</feed>`

const backfillListing = `{"data":{"children":[
  {"data":{"id":"p1","title":"Weekly update","author":"GrimmHost","link_flair_text":"Official Blog","thumbnail":"https://b.thumbs.example/p1.jpg","url":"https://www.reddit.com/r/TheDaysGrimm/comments/p1/weekly_update/"}}
]}}`

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func listingPostFixture(t *testing.T) []domain.Post {
	t.Helper()
	flair := "Official Blog"
	return []domain.Post{
		{
			ID:         "p1",
			Title:      "Weekly update",
			Selftext:   "Hello everyone",
			URL:        "https://www.reddit.com/r/TheDaysGrimm/comments/p1/weekly_update/",
			Author:     "grimmhost",
			CreatedUTC: 1741000000,
			Flair:      &flair,
		},
	}
}

func newTestService(client interfaces.HTTPClient, cache interfaces.Cache) *Service {
	service := NewService(interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: client,
		Logger:     &mockLogger{},
	}, Config{
		Subreddit:     "TheDaysGrimm",
		RequiredFlair: "Official Blog",
		CacheTTL:      6 * time.Hour,
		FallbackTTL:   24 * time.Hour,
	})
	service.now = func() time.Time { return testNow }
	return service
}

func listingClient(t *testing.T) *mockHTTPClient {
	t.Helper()
	client := &mockHTTPClient{}
	client.getFunc = func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
		switch {
		case strings.Contains(url, "search.json"), strings.Contains(url, "new.json"):
			return &mockResponse{status: 200, body: sampleListing}, nil
		case strings.Contains(url, ".rss"):
			return &mockResponse{status: 200, body: sampleAtomFeed}, nil
		default:
			t.Errorf("unexpected request: %s", url)
			return &mockResponse{status: 404, body: ""}, nil
		}
	}
	return client
}

func TestPosts_FlairFilterViaSearch(t *testing.T) {
	client := listingClient(t)
	service := newTestService(client, newMockCache())

	result, err := service.Posts(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(result.Posts) != 2 {
		t.Fatalf("got %d posts, want the 2 flaired ones", len(result.Posts))
	}
	for _, p := range result.Posts {
		if p.Flair == nil || *p.Flair != "Official Blog" {
			t.Errorf("post %s flair = %v, want Official Blog", p.ID, p.Flair)
		}
		if p.Author != "grimmhost" {
			t.Errorf("post %s author = %q, want normalized grimmhost", p.ID, p.Author)
		}
	}
	if len(client.calls) != 1 || !strings.Contains(client.calls[0], "search.json") {
		t.Errorf("calls = %v, want one flair-scoped search call", client.calls)
	}
}

func TestPosts_FlairOverrideDisablesFilter(t *testing.T) {
	client := listingClient(t)
	service := newTestService(client, newMockCache())

	empty := ""
	noAuthor := ""
	result, err := service.Posts(context.Background(), Query{Flair: &empty, Author: &noAuthor})
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(result.Posts) != 3 {
		t.Errorf("got %d posts, want all 3 with filters disabled", len(result.Posts))
	}
	if !strings.Contains(client.calls[0], "new.json") {
		t.Errorf("call = %q, want the newest listing without a search query", client.calls[0])
	}
}

func TestPosts_CacheHitSkipsUpstream(t *testing.T) {
	client := listingClient(t)
	service := newTestService(client, newMockCache())

	first, err := service.Posts(context.Background(), Query{})
	if err != nil {
		t.Fatalf("first call returned error: %v", err)
	}
	callsAfterFirst := len(client.calls)

	second, err := service.Posts(context.Background(), Query{})
	if err != nil {
		t.Fatalf("second call returned error: %v", err)
	}
	if len(client.calls) != callsAfterFirst {
		t.Errorf("second call made %d extra upstream requests, want 0", len(client.calls)-callsAfterFirst)
	}
	if !reflect.DeepEqual(first.Posts, second.Posts) {
		t.Error("cached result should be identical to the original")
	}
}

func TestPosts_DistinctFiltersCacheIndependently(t *testing.T) {
	client := listingClient(t)
	cache := newMockCache()
	service := newTestService(client, cache)

	if _, err := service.Posts(context.Background(), Query{}); err != nil {
		t.Fatalf("default query returned error: %v", err)
	}
	other := "Announcements"
	if _, err := service.Posts(context.Background(), Query{Flair: &other}); err != nil {
		t.Fatalf("override query returned error: %v", err)
	}

	if count, _ := cache.Count(); count != 2 {
		t.Errorf("cache entries = %d, want 2 distinct keys", count)
	}
}

func TestPosts_StaleCacheServedOnUpstreamFailure(t *testing.T) {
	cache := newMockCache()
	service := newTestService(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
			return nil, errors.New("connection refused")
		},
	}, cache)

	stale := cachedPosts{
		FetchedAt: testNow.Add(-10 * time.Hour).Unix(),
		Source:    sourceSearch,
		Posts:     listingPostFixture(t),
	}
	key := service.cacheKey(service.resolveQuery(Query{}))
	if err := cache.Set(cachePrefix, key, stale, 24*time.Hour); err != nil {
		t.Fatal(err)
	}

	result, err := service.Posts(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Posts should fall back to stale cache, got error: %v", err)
	}
	if len(result.Posts) != 1 || result.Posts[0].ID != "p1" {
		t.Errorf("posts = %+v, want the stale cached post", result.Posts)
	}
}

func TestPosts_FeedFallbackWithThumbnailBackfill(t *testing.T) {
	client := &mockHTTPClient{}
	client.getFunc = func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
		switch {
		case strings.Contains(url, "search.json"):
			return &mockResponse{status: 403, body: "<!doctype html>blocked"}, nil
		case strings.Contains(url, "search.rss"):
			return &mockResponse{status: 200, body: backfillAtomFeed}, nil
		case strings.Contains(url, "new.json"):
			return &mockResponse{status: 200, body: backfillListing}, nil
		default:
			t.Errorf("unexpected request: %s", url)
			return &mockResponse{status: 404, body: ""}, nil
		}
	}
	service := newTestService(client, newMockCache())

	result, err := service.Posts(context.Background(), Query{Debug: true})
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(result.Posts) != 1 {
		t.Fatalf("got %d posts, want 1 from the feed", len(result.Posts))
	}
	post := result.Posts[0]
	if post.ID != "p1" {
		t.Errorf("id = %q, want p1", post.ID)
	}
	if post.Thumbnail == nil || *post.Thumbnail != "https://b.thumbs.example/p1.jpg" {
		t.Errorf("thumbnail = %v, want backfilled from the listing", post.Thumbnail)
	}
	if post.Flair == nil || *post.Flair != "Official Blog" {
		t.Errorf("flair = %v, want backfilled from the listing", post.Flair)
	}
	if result.Debug == nil || result.Debug.Source != sourceFeed {
		t.Errorf("debug = %+v, want feed source", result.Debug)
	}
}

func TestPosts_AllPathsBlockedIs403(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
			return &mockResponse{status: 403, body: "<!doctype html>blocked"}, nil
		},
	}
	service := newTestService(client, newMockCache())

	_, err := service.Posts(context.Background(), Query{})
	if err == nil {
		t.Fatal("Posts should fail when every path is blocked")
	}
	apiErr, ok := coreerrors.AsExternalAPI(err)
	if !ok || apiErr.StatusCode != 403 {
		t.Fatalf("error = %v, want ExternalAPIError 403", err)
	}
	if !strings.Contains(apiErr.Message, "blocking") {
		t.Errorf("message = %q, want to name blocking", apiErr.Message)
	}
}

func TestPosts_EmptyResultsAreNotAnError(t *testing.T) {
	client := &mockHTTPClient{}
	client.getFunc = func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
		if strings.Contains(url, ".json") {
			return &mockResponse{status: 200, body: `{"data":{"children":[]}}`}, nil
		}
		return &mockResponse{status: 200, body: `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`}, nil
	}
	service := newTestService(client, newMockCache())

	result, err := service.Posts(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if result.Posts == nil || len(result.Posts) != 0 {
		t.Errorf("posts = %v, want an empty non-nil slice", result.Posts)
	}
}

func TestPosts_LimitClamped(t *testing.T) {
	service := newTestService(nil, nil)

	if fq := service.resolveQuery(Query{Limit: 100}); fq.Limit != MaxLimit {
		t.Errorf("limit 100 resolved to %d, want %d", fq.Limit, MaxLimit)
	}
	if fq := service.resolveQuery(Query{}); fq.Limit != DefaultLimit {
		t.Errorf("unset limit resolved to %d, want %d", fq.Limit, DefaultLimit)
	}
	if fq := service.resolveQuery(Query{Limit: -3}); fq.Limit != DefaultLimit {
		t.Errorf("negative limit resolved to %d, want %d", fq.Limit, DefaultLimit)
	}
}

func TestPosts_LimitTruncatesResults(t *testing.T) {
	client := listingClient(t)
	service := newTestService(client, newMockCache())

	result, err := service.Posts(context.Background(), Query{Limit: 1})
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(result.Posts) != 1 {
		t.Errorf("got %d posts, want 1", len(result.Posts))
	}
}

func TestPosts_DebugPayload(t *testing.T) {
	client := listingClient(t)
	service := newTestService(client, newMockCache())

	result, err := service.Posts(context.Background(), Query{Debug: true})
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	dbg := result.Debug
	if dbg == nil {
		t.Fatal("debug info missing")
	}
	if dbg.Subreddit != "TheDaysGrimm" || dbg.Flair != "Official Blog" {
		t.Errorf("debug echo = %+v, want the effective request", dbg)
	}
	if dbg.Source != sourceSearch {
		t.Errorf("source = %q, want search", dbg.Source)
	}
	if dbg.TotalCandidates != 3 || dbg.FilteredCount != 2 {
		t.Errorf("candidates/filtered = %d/%d, want 3/2", dbg.TotalCandidates, dbg.FilteredCount)
	}
	if len(dbg.Sample) != 3 {
		t.Errorf("sample size = %d, want all 3 raw entries", len(dbg.Sample))
	}
}

func TestPosts_NoSubredditIsConfigError(t *testing.T) {
	service := NewService(interfaces.Dependencies{Logger: &mockLogger{}}, Config{})

	_, err := service.Posts(context.Background(), Query{})
	if !coreerrors.IsConfig(err) {
		t.Errorf("error = %v, want a ConfigError", err)
	}
}
