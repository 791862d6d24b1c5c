// ABOUTME: Thumbnail resolution for structured-search posts
// ABOUTME: Ordered fallback chain over preview, gallery, direct URL, thumbnail field

package posts

import (
	"strings"
)

// thumbnailSentinels are placeholder values the platform puts in the
// thumbnail field instead of a URL.
var thumbnailSentinels = map[string]bool{
	"self":    true,
	"default": true,
	"nsfw":    true,
	"image":   true,
	"spoiler": true,
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// isDirectImageURL reports whether a URL points straight at an image file.
func isDirectImageURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	if idx := strings.IndexAny(lower, "?#"); idx >= 0 {
		lower = lower[:idx]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// unescapeURL undoes the HTML entity encoding the platform applies to
// embedded media URLs.
func unescapeURL(rawURL string) string {
	return strings.ReplaceAll(rawURL, "&amp;", "&")
}

// resolveThumbnail walks the fallback chain for a structured-search post and
// returns the best thumbnail URL, or nil when none applies.
func resolveThumbnail(p redditPost) *string {
	if u := previewThumbnail(p); u != "" {
		u = unescapeURL(u)
		return &u
	}

	if u := galleryThumbnail(p); u != "" {
		u = unescapeURL(u)
		return &u
	}

	if p.URL != "" && isDirectImageURL(p.URL) {
		u := unescapeURL(p.URL)
		return &u
	}

	if strings.HasPrefix(p.Thumbnail, "http://") || strings.HasPrefix(p.Thumbnail, "https://") {
		if !thumbnailSentinels[p.Thumbnail] {
			u := unescapeURL(p.Thumbnail)
			return &u
		}
	}

	return nil
}

// previewThumbnail returns the richest embedded preview image: the source
// image when present, otherwise the largest resolution variant.
func previewThumbnail(p redditPost) string {
	if p.Preview == nil || len(p.Preview.Images) == 0 {
		return ""
	}

	img := p.Preview.Images[0]
	if img.Source.URL != "" {
		return img.Source.URL
	}

	best := ""
	bestWidth := -1
	for _, res := range img.Resolutions {
		if res.URL != "" && res.Width > bestWidth {
			best = res.URL
			bestWidth = res.Width
		}
	}
	return best
}

// galleryThumbnail returns the first gallery item's media source, following
// gallery order when available.
func galleryThumbnail(p redditPost) string {
	if len(p.MediaMetadata) == 0 {
		return ""
	}

	if p.GalleryData != nil {
		for _, item := range p.GalleryData.Items {
			if media, ok := p.MediaMetadata[item.MediaID]; ok && media.S.U != "" {
				return media.S.U
			}
		}
	}

	for _, media := range p.MediaMetadata {
		if media.S.U != "" {
			return media.S.U
		}
	}
	return ""
}
