// ABOUTME: YouTube Data API implementation of the episode VideoSource
// ABOUTME: Thin adapter; all aggregation logic lives in core/episodes

package youtube

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"daysgrimm-api/core/episodes"
	coreerrors "daysgrimm-api/core/errors"
)

// Client implements episodes.VideoSource over the YouTube Data API v3.
type Client struct {
	service *yt.Service
}

// NewClient creates a YouTube client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, &coreerrors.ConfigError{
			Key:     "YOUTUBE_API_KEY",
			Message: "no API key configured",
		}
	}

	service, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, coreerrors.WrapError(err, "creating youtube service")
	}
	return &Client{service: service}, nil
}

// ChannelIDForUsername resolves a legacy username or handle to a channel ID.
func (c *Client) ChannelIDForUsername(ctx context.Context, username string) (string, error) {
	resp, err := c.service.Channels.List([]string{"id"}).
		ForUsername(username).
		Context(ctx).
		Do()
	if err != nil {
		return "", wrapAPIError(err, "channel lookup failed")
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Id, nil
}

// SearchChannelByName returns the first channel matching a display-name query.
func (c *Client) SearchChannelByName(ctx context.Context, query string) (string, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", wrapAPIError(err, "channel search failed")
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil {
		return "", nil
	}
	return resp.Items[0].Id.ChannelId, nil
}

// SearchVideos lists recent channel videos for one facet, newest first.
func (c *Client) SearchVideos(ctx context.Context, channelID string, facet episodes.SearchFacet, publishedAfter time.Time, maxResults int64) ([]episodes.Candidate, error) {
	call := c.service.Search.List([]string{"id", "snippet"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(maxResults).
		PublishedAfter(publishedAfter.UTC().Format(time.RFC3339)).
		Context(ctx)

	if facet.Duration != "" {
		call = call.VideoDuration(facet.Duration)
	}
	if facet.EventType != "" {
		call = call.EventType(facet.EventType)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, wrapAPIError(err, "video search failed")
	}

	candidates := make([]episodes.Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		candidate := episodes.Candidate{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			candidate.PublishedAt = parseTime(item.Snippet.PublishedAt)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// VideoDetails batch-fetches full video records for classification.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]episodes.VideoDetails, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics", "liveStreamingDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError(err, "video details fetch failed")
	}

	details := make([]episodes.VideoDetails, 0, len(resp.Items))
	for _, item := range resp.Items {
		d := episodes.VideoDetails{ID: item.Id}
		if item.Snippet != nil {
			d.Title = item.Snippet.Title
			d.Description = item.Snippet.Description
			d.PublishedAt = parseTime(item.Snippet.PublishedAt)
			d.LiveBroadcastContent = item.Snippet.LiveBroadcastContent
			d.Thumbnails = thumbnailSet(item.Snippet.Thumbnails)
		}
		if item.ContentDetails != nil {
			d.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			d.ViewCount = item.Statistics.ViewCount
		}
		if item.LiveStreamingDetails != nil {
			d.ScheduledStartTime = parseTime(item.LiveStreamingDetails.ScheduledStartTime)
			d.ActualStartTime = parseTime(item.LiveStreamingDetails.ActualStartTime)
		}
		details = append(details, d)
	}
	return details, nil
}

func thumbnailSet(t *yt.ThumbnailDetails) episodes.ThumbnailSet {
	if t == nil {
		return episodes.ThumbnailSet{}
	}
	set := episodes.ThumbnailSet{}
	if t.Maxres != nil {
		set.Maxres = t.Maxres.Url
	}
	if t.Standard != nil {
		set.Standard = t.Standard.Url
	}
	if t.High != nil {
		set.High = t.High.Url
	}
	if t.Medium != nil {
		set.Medium = t.Medium.Url
	}
	if t.Default != nil {
		set.Default = t.Default.Url
	}
	return set
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// wrapAPIError converts Google API errors into the shared external-API error
// type so handlers can map status codes uniformly.
func wrapAPIError(err error, message string) error {
	if gErr, ok := err.(*googleapi.Error); ok {
		return &coreerrors.ExternalAPIError{
			StatusCode: gErr.Code,
			Message:    fmt.Sprintf("%s: %s", message, gErr.Message),
			API:        "youtube",
		}
	}
	return coreerrors.WrapError(err, message)
}
