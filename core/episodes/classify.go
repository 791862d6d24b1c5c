// ABOUTME: Per-video classification into the Episode record shape
// ABOUTME: Shorts detection, upcoming detection, timestamp selection, number extraction

package episodes

import (
	"regexp"
	"strings"
	"time"

	"daysgrimm-api/core/domain"
	"github.com/dustin/go-humanize"
)

const (
	// shortMaxSeconds is the hard duration ceiling for a short-form clip
	shortMaxSeconds = 60

	// shortsTagMaxSeconds caps the tag heuristic: a #shorts tag only counts
	// when the video is still plausibly a clip
	shortsTagMaxSeconds = 180

	// maxDescriptionLength bounds the single-line description
	maxDescriptionLength = 200

	displayDateLayout = "January 2, 2006"
)

var (
	shortsTagPattern     = regexp.MustCompile(`(?i)#shorts`)
	hashNumberPattern    = regexp.MustCompile(`#\s*\d+`)
	episodeNumberPattern = regexp.MustCompile(`(?i)(?:episode|ep)\s*#?\s*\d+`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// ExtractEpisodeNumber pulls the episode number token as it appears in the
// title. Hashtag forms like "#224" win over phrases like "Episode 224".
func ExtractEpisodeNumber(title string) string {
	if m := hashNumberPattern.FindString(title); m != "" {
		return whitespacePattern.ReplaceAllString(m, "")
	}
	if m := episodeNumberPattern.FindString(title); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

// firstLine returns the first line of text, capped to maxDescriptionLength runes.
func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxDescriptionLength {
		return string(runes[:maxDescriptionLength])
	}
	return text
}

// Classify turns raw video details into an Episode record. order is the
// video's index in the merged candidate list, used for tie-breaking.
func Classify(video VideoDetails, order int, now time.Time) domain.Episode {
	durationSeconds := ParseDurationSeconds(video.Duration)
	title := video.Title

	// Upcoming only if explicitly flagged, or scheduled in the future with no
	// actual start recorded yet
	isUpcoming := video.LiveBroadcastContent == "upcoming" ||
		(!video.ScheduledStartTime.IsZero() && video.ScheduledStartTime.After(now) && video.ActualStartTime.IsZero())

	// Upcoming items are never shorts: their duration is typically unset or
	// zero and means nothing yet
	hasShortsTag := shortsTagPattern.MatchString(title) || shortsTagPattern.MatchString(video.Description)
	isShort := !isUpcoming &&
		((durationSeconds > 0 && durationSeconds <= shortMaxSeconds) ||
			(hasShortsTag && durationSeconds <= shortsTagMaxSeconds))

	// Most authoritative available timestamp: actual start > scheduled start > publish
	published := video.PublishedAt
	if !video.ActualStartTime.IsZero() {
		published = video.ActualStartTime
	}

	sortTime := published
	displayTime := published
	if isUpcoming && !video.ScheduledStartTime.IsZero() {
		sortTime = video.ScheduledStartTime
		displayTime = video.ScheduledStartTime
	}

	return domain.Episode{
		ID:              video.ID,
		Order:           order,
		Number:          ExtractEpisodeNumber(title),
		Title:           title,
		Description:     firstLine(video.Description),
		Date:            displayTime.Format(displayDateLayout),
		SortTimestamp:   sortTime.Unix(),
		Duration:        FormatSeconds(durationSeconds),
		DurationSeconds: durationSeconds,
		Thumbnail:       video.Thumbnails.Best(),
		ViewCount:       humanize.Comma(int64(video.ViewCount)),
		YouTubeURL:      "https://www.youtube.com/watch?v=" + video.ID,
		IsShort:         isShort,
		IsUpcoming:      isUpcoming,
	}
}

// MarkFeatured sets featured on exactly one episode: the earliest-scheduled
// upcoming item when any exist, otherwise the most recently published item,
// otherwise the first in list order. No-op on an empty list.
func MarkFeatured(episodes []domain.Episode) {
	if len(episodes) == 0 {
		return
	}

	for i := range episodes {
		episodes[i].Featured = false
	}

	featuredIdx := -1
	for i, ep := range episodes {
		if !ep.IsUpcoming {
			continue
		}
		if featuredIdx < 0 || ep.SortTimestamp < episodes[featuredIdx].SortTimestamp {
			featuredIdx = i
		}
	}

	if featuredIdx < 0 {
		for i, ep := range episodes {
			if ep.IsUpcoming {
				continue
			}
			if featuredIdx < 0 || ep.SortTimestamp > episodes[featuredIdx].SortTimestamp {
				featuredIdx = i
			}
		}
	}

	if featuredIdx < 0 {
		featuredIdx = 0
	}

	episodes[featuredIdx].Featured = true
}
