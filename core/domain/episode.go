// ABOUTME: Episode domain model served by the episodes endpoint
// ABOUTME: Field names mirror the payload the site frontend consumes

package domain

// Episode represents a single podcast episode derived from a channel video.
type Episode struct {
	// ID is the source platform video identifier
	ID string `json:"id"`

	// Order preserves the upstream search order for tie-breaking
	Order int `json:"order"`

	// Number is the episode number token as it appears in the title ("#224",
	// "Episode 224"), empty when the title carries none
	Number string `json:"number"`

	Title string `json:"title"`

	// Description is the first line of the full video description
	Description string `json:"description"`

	// Date is the human-readable display date ("January 2, 2006")
	Date string `json:"date"`

	// SortTimestamp is the effective epoch-seconds timestamp used for
	// ordering: scheduled start for upcoming items, actual start or publish
	// time otherwise
	SortTimestamp int64 `json:"sortTimestamp"`

	// Duration is the human-formatted duration ("1:02:03", "0:45")
	Duration string `json:"duration"`

	DurationSeconds int `json:"durationSeconds"`

	// Thumbnail is the highest-resolution thumbnail available, empty if none
	Thumbnail string `json:"thumbnail"`

	// ViewCount is the comma-grouped view count ("12,345")
	ViewCount string `json:"viewCount"`

	YouTubeURL string `json:"youtubeUrl"`

	// Platform links are maintained by hand, never populated programmatically
	SpotifyURL      *string `json:"spotifyUrl"`
	ApplePodcastURL *string `json:"applePodcastUrl"`

	IsShort    bool `json:"isShort"`
	IsUpcoming bool `json:"isUpcoming"`

	// Featured marks the single episode the frontend should highlight
	Featured bool `json:"featured"`
}
