// ABOUTME: Atom feed fallback strategy for subreddit posts
// ABOUTME: Rotates user agents and normalizes feed entries into the domain shape

package posts

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"math/rand"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"daysgrimm-api/core/domain"
	coreerrors "daysgrimm-api/core/errors"
	"daysgrimm-api/core/interfaces"
)

// feedBodyMaxLength caps HTML-stripped feed bodies so feed-sourced posts stay
// preview-sized like search-sourced selftexts.
const feedBodyMaxLength = 500

// feedUserAgents is tried in order; the descriptive agent first, then common
// browser agents, since the feed endpoint blocks agents inconsistently.
var feedUserAgents = []string{
	descriptiveUserAgent,
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
}

var (
	commentIDPattern = regexp.MustCompile(`/comments/([a-z0-9]+)`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// postIDFromLink extracts the post identifier from a permalink, or "" when
// the link does not follow the comments URL shape.
func postIDFromLink(link string) string {
	m := commentIDPattern.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// stripHTML flattens feed entry markup into plain preview text.
func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > feedBodyMaxLength {
		s = strings.TrimSpace(s[:feedBodyMaxLength])
	}
	return s
}

// feedStrategy fetches posts through the subreddit Atom feed. Flair is not
// carried on the feed, so it only runs when no flair filter applies or when
// the search path already failed.
type feedStrategy struct {
	client    interfaces.HTTPClient
	subreddit string
	parser    *gofeed.Parser
}

func newFeedStrategy(client interfaces.HTTPClient, subreddit string) *feedStrategy {
	return &feedStrategy{
		client:    client,
		subreddit: subreddit,
		parser:    gofeed.NewParser(),
	}
}

func (s *feedStrategy) name() string { return sourceFeed }

func (s *feedStrategy) endpoint(q fetchQuery) string {
	if q.Flair != "" {
		params := url.Values{}
		params.Set("q", fmt.Sprintf("flair_name:%q", q.Flair))
		params.Set("restrict_sr", "1")
		params.Set("sort", "new")
		return fmt.Sprintf("https://www.reddit.com/r/%s/search.rss?%s", s.subreddit, params.Encode())
	}
	return fmt.Sprintf("https://www.reddit.com/r/%s/.rss", s.subreddit)
}

func (s *feedStrategy) fetch(ctx context.Context, q fetchQuery) ([]domain.Post, fetchMeta, error) {
	meta := fetchMeta{Source: sourceFeed}
	endpoint := s.endpoint(q)

	var lastErr error
	for _, agent := range feedUserAgents {
		resp, err := s.client.Get(ctx, endpoint, map[string]string{
			"User-Agent": agent,
			"Accept":     "application/atom+xml, application/rss+xml, application/xml",
		})
		if err != nil {
			lastErr = coreerrors.WrapError(err, "subreddit feed request failed")
			continue
		}

		body, readErr := io.ReadAll(resp.Body())
		resp.Body().Close()
		meta.UpstreamStatus = resp.StatusCode()
		if readErr != nil {
			lastErr = coreerrors.WrapError(readErr, "reading subreddit feed response")
			continue
		}

		if resp.StatusCode() >= 400 {
			lastErr = &coreerrors.ExternalAPIError{
				StatusCode: resp.StatusCode(),
				Message:    fmt.Sprintf("subreddit feed returned status %d", resp.StatusCode()),
				API:        "reddit",
				HTMLBody:   strings.HasPrefix(strings.TrimSpace(string(body)), "<!"),
			}
			continue
		}

		feed, parseErr := s.parser.Parse(bytes.NewReader(body))
		if parseErr != nil {
			lastErr = &coreerrors.ParseError{Source: "reddit-feed", Message: parseErr.Error()}
			continue
		}

		meta.TotalCandidates = len(feed.Items)
		return s.convert(feed, q), meta, nil
	}

	return nil, meta, lastErr
}

// convert maps feed entries to domain posts, applying the author filter. The
// feed carries no flair, so a flair filter is satisfied by the flair-scoped
// search feed URL rather than per-entry checks.
func (s *feedStrategy) convert(feed *gofeed.Feed, q fetchQuery) []domain.Post {
	posts := make([]domain.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		author := feedAuthor(item)
		if !matchesAuthor(author, q.Author) {
			continue
		}

		id := postIDFromLink(item.Link)
		if id == "" {
			id = "feed-" + strconv.FormatInt(rand.Int63(), 36)
		}

		var created int64
		if item.PublishedParsed != nil {
			created = item.PublishedParsed.Unix()
		} else if item.UpdatedParsed != nil {
			created = item.UpdatedParsed.Unix()
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}

		posts = append(posts, domain.Post{
			ID:         id,
			Title:      item.Title,
			Selftext:   stripHTML(body),
			URL:        item.Link,
			Author:     NormalizeAuthor(author),
			CreatedUTC: created,
		})
	}
	return posts
}

// feedAuthor returns the entry author name, which the feed formats as
// "/u/name".
func feedAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}
