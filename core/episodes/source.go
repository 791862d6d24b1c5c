// ABOUTME: VideoSource contract the episode aggregator depends on
// ABOUTME: Keeps the aggregation pipeline independent of the YouTube client

package episodes

import (
	"context"
	"time"
)

// SearchFacet narrows a candidate search to one duration class or event type.
// A single search under-returns content (short videos are excluded per facet
// and upcoming items may carry no duration facet at all), so the aggregator
// issues one search per facet and merges.
type SearchFacet struct {
	// Duration is the source API duration class ("medium", "long"), empty for none
	Duration string

	// EventType is the live event type ("upcoming", "live"), empty for none
	EventType string
}

// Candidate is a video surfaced by a faceted search, before detail fetch.
type Candidate struct {
	VideoID     string
	PublishedAt time.Time
}

// ThumbnailSet holds the named thumbnail sizes a video offers, best first.
type ThumbnailSet struct {
	Maxres   string
	Standard string
	High     string
	Medium   string
	Default  string
}

// Best returns the highest-resolution thumbnail available, empty if none.
func (t ThumbnailSet) Best() string {
	for _, u := range []string{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if u != "" {
			return u
		}
	}
	return ""
}

// VideoDetails is the full per-video record needed for classification.
type VideoDetails struct {
	ID          string
	Title       string
	Description string
	PublishedAt time.Time

	// Duration is the raw ISO-8601 duration, empty for upcoming items
	Duration string

	ViewCount uint64

	// LiveBroadcastContent is the source live state ("none", "upcoming", "live")
	LiveBroadcastContent string

	// ScheduledStartTime and ActualStartTime are zero when the video has no
	// live-streaming schedule
	ScheduledStartTime time.Time
	ActualStartTime    time.Time

	Thumbnails ThumbnailSet
}

// VideoSource is the upstream video platform the aggregator reads from.
type VideoSource interface {
	// ChannelIDForUsername resolves a channel's custom username/handle to a
	// channel ID. Returns empty string without error when nothing matches.
	ChannelIDForUsername(ctx context.Context, username string) (string, error)

	// SearchChannelByName searches channels by display name and returns the
	// first match's ID, or empty string when nothing matches.
	SearchChannelByName(ctx context.Context, query string) (string, error)

	// SearchVideos lists recent channel videos for one facet, newest first.
	SearchVideos(ctx context.Context, channelID string, facet SearchFacet, publishedAfter time.Time, maxResults int64) ([]Candidate, error)

	// VideoDetails batch-fetches full details for the given video IDs.
	VideoDetails(ctx context.Context, ids []string) ([]VideoDetails, error)
}
