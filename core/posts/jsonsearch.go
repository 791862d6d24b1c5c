// ABOUTME: Structured JSON search strategy for subreddit posts
// ABOUTME: Primary fetch path; returns flair metadata and rich thumbnails

package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"daysgrimm-api/core/domain"
	coreerrors "daysgrimm-api/core/errors"
	"daysgrimm-api/core/interfaces"
)

// descriptiveUserAgent identifies the site to upstream APIs. Anonymous or
// browser-spoofed agents are far more likely to be blocked on the JSON API.
const descriptiveUserAgent = "DaysGrimmSite/1.0 (+contact@thedaysgrimm.com)"

// redditListing is the envelope of a subreddit listing response.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// redditPost carries the subset of listing fields the aggregator reads.
type redditPost struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Selftext        string                 `json:"selftext"`
	Permalink       string                 `json:"permalink"`
	URL             string                 `json:"url"`
	Author          string                 `json:"author"`
	CreatedUTC      float64                `json:"created_utc"`
	LinkFlairText   string                 `json:"link_flair_text"`
	AuthorFlairText string                 `json:"author_flair_text"`
	Thumbnail       string                 `json:"thumbnail"`
	Preview         *redditPreview         `json:"preview"`
	MediaMetadata   map[string]redditMedia `json:"media_metadata"`
	GalleryData     *redditGallery         `json:"gallery_data"`
}

type redditPreview struct {
	Images []struct {
		Source      redditImage   `json:"source"`
		Resolutions []redditImage `json:"resolutions"`
	} `json:"images"`
}

type redditImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type redditMedia struct {
	S struct {
		U string `json:"u"`
	} `json:"s"`
}

type redditGallery struct {
	Items []struct {
		MediaID string `json:"media_id"`
	} `json:"items"`
}

// flairOf returns the post's display flair: link flair wins, author flair is
// the fallback.
func flairOf(p redditPost) string {
	if p.LinkFlairText != "" {
		return p.LinkFlairText
	}
	return p.AuthorFlairText
}

// jsonSearchStrategy fetches posts through the subreddit JSON API. A flair
// filter becomes a scoped search query; otherwise the newest listing is used.
type jsonSearchStrategy struct {
	client    interfaces.HTTPClient
	subreddit string
}

func (s *jsonSearchStrategy) name() string { return sourceSearch }

func (s *jsonSearchStrategy) endpoint(q fetchQuery) string {
	if q.Flair != "" {
		params := url.Values{}
		params.Set("q", fmt.Sprintf("flair_name:%q", q.Flair))
		params.Set("restrict_sr", "1")
		params.Set("sort", "new")
		params.Set("limit", fmt.Sprintf("%d", q.Limit))
		return fmt.Sprintf("https://www.reddit.com/r/%s/search.json?%s", s.subreddit, params.Encode())
	}
	return fmt.Sprintf("https://www.reddit.com/r/%s/new.json?limit=%d", s.subreddit, q.Limit)
}

func (s *jsonSearchStrategy) fetch(ctx context.Context, q fetchQuery) ([]domain.Post, fetchMeta, error) {
	meta := fetchMeta{Source: sourceSearch}

	resp, err := s.client.Get(ctx, s.endpoint(q), map[string]string{
		"User-Agent": descriptiveUserAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, meta, coreerrors.WrapError(err, "subreddit search request failed")
	}
	defer resp.Body().Close()
	meta.UpstreamStatus = resp.StatusCode()

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, meta, coreerrors.WrapError(err, "reading subreddit search response")
	}

	looksLikeHTML := strings.HasPrefix(strings.TrimSpace(string(body)), "<")
	meta.LookedLikeHTML = looksLikeHTML

	var listing redditListing
	if jsonErr := json.Unmarshal(body, &listing); jsonErr != nil || looksLikeHTML {
		if resp.StatusCode() >= 400 {
			return nil, meta, &coreerrors.ExternalAPIError{
				StatusCode: resp.StatusCode(),
				Message:    fmt.Sprintf("subreddit search returned status %d", resp.StatusCode()),
				API:        "reddit",
				HTMLBody:   looksLikeHTML,
			}
		}
		return nil, meta, &coreerrors.ParseError{
			Source:  "reddit-search",
			Message: "response is not a post listing",
		}
	}
	if resp.StatusCode() >= 400 {
		return nil, meta, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("subreddit search returned status %d", resp.StatusCode()),
			API:        "reddit",
		}
	}

	meta.TotalCandidates = len(listing.Data.Children)
	posts := make([]domain.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		raw := child.Data
		meta.Sample = appendSample(meta.Sample, raw)
		if !matchesFlair(flairOf(raw), q.Flair) {
			continue
		}
		if !matchesAuthor(raw.Author, q.Author) {
			continue
		}
		posts = append(posts, listingToPost(raw))
	}
	return posts, meta, nil
}

// listingToPost maps a raw listing entry to the domain shape.
func listingToPost(raw redditPost) domain.Post {
	post := domain.Post{
		ID:         raw.ID,
		Title:      raw.Title,
		Selftext:   raw.Selftext,
		URL:        "https://www.reddit.com" + raw.Permalink,
		Author:     NormalizeAuthor(raw.Author),
		CreatedUTC: int64(raw.CreatedUTC),
		Thumbnail:  resolveThumbnail(raw),
	}
	if flair := flairOf(raw); flair != "" {
		post.Flair = &flair
	}
	return post
}
