// ABOUTME: Blog post domain model sourced from the community platform
// ABOUTME: Normalized across the structured-search and feed source paths

package domain

// Post represents a community blog post in the shape the frontend consumes.
type Post struct {
	// ID is the platform post identifier, or an identifier extracted from the
	// permalink when the post came from the feed path
	ID string `json:"id"`

	Title string `json:"title"`

	// Selftext is the post body, possibly empty; feed-sourced bodies are
	// HTML-stripped and length-capped
	Selftext string `json:"selftext"`

	// URL is the canonical permalink on the platform
	URL string `json:"url"`

	// Author is the posting account without any platform prefix
	Author string `json:"author"`

	// CreatedUTC is the creation time in epoch seconds
	CreatedUTC int64 `json:"createdUtc"`

	// Flair is the post's category label; nil when absent or when the source
	// path (the feed) does not carry flair data
	Flair *string `json:"flair"`

	// Thumbnail is the resolved preview image URL, nil when none applies
	Thumbnail *string `json:"thumbnail"`
}
